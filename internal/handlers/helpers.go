package handlers

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// fall back to a timestamp-derived suffix.
		return strconv.FormatInt(time.Now().UnixNano(), 36)[:n]
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = base36Chars[int(b)%len(base36Chars)]
	}
	return string(out)
}

// generateOrderID mints a human-facing order reference:
// ORD-<base36 ms timestamp>-<6 random base36 chars>, uppercased.
// Collisions are astronomically unlikely and not checked against the
// store.
func generateOrderID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	return strings.ToUpper(fmt.Sprintf("ORD-%s-%s", ts, randomBase36(6)))
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// generateSKU derives a stock keeping unit from the category and name
// plus a random suffix, e.g. TSH-CLASSI-9X4B.
func generateSKU(category, name string) string {
	categoryCode := strings.ToUpper(category)
	if len(categoryCode) > 3 {
		categoryCode = categoryCode[:3]
	}

	nameCode := strings.ToUpper(nonAlphanumeric.ReplaceAllString(name, ""))
	if len(nameCode) > 6 {
		nameCode = nameCode[:6]
	}

	return fmt.Sprintf("%s-%s-%s", categoryCode, nameCode, strings.ToUpper(randomBase36(4)))
}

var nonDigits = regexp.MustCompile(`\D`)

// normalizePhone formats 10/11-digit US numbers with a +1 prefix and
// leaves anything else untouched.
func normalizePhone(phone string) string {
	if phone == "" {
		return ""
	}

	digits := nonDigits.ReplaceAllString(phone, "")
	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	default:
		return phone
	}
}

// searchPrefixFilter builds the name range scan for free-text search.
// This matches prefixes only, never substrings; that is a capability
// limit of the range scan, not a defect.
func searchPrefixFilter(term string) bson.M {
	return bson.M{"$gte": term, "$lte": term + "\uf8ff"}
}
