package services

import (
	"regexp"
	"strings"

	"lotocart/domain/entities"
)

// numberPattern accepts an optional sign followed by digits only. The sign is
// never meaningful in practice because the input boundary strips everything
// but digits, commas and spaces, but the normalizer tolerates it.
var numberPattern = regexp.MustCompile(`^-?\d+$`)

// NumberService contains the pure logic that turns free-text numeric input
// into the per-digit-length ticket number buckets.
type NumberService struct{}

// NewNumberService creates a new NumberService
func NewNumberService() *NumberService {
	return &NumberService{}
}

// SanitizeInput enforces the edit-boundary alphabet: digits, commas and
// spaces survive, everything else is silently dropped. Applied to every
// keystroke and paste before the raw input reaches the cart.
func (s *NumberService) SanitizeInput(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ',' || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize splits raw comma-separated input into clean numeric tokens.
// Leading zeros are preserved and malformed pieces are discarded without
// error. Deduplication is not done here; that is the projector's job, scoped
// per digit length.
func (s *NumberService) Normalize(raw string) []string {
	var numbers []string
	for _, piece := range strings.Split(raw, ",") {
		piece = strings.TrimSpace(piece)
		piece = strings.ReplaceAll(piece, ",", "")
		if piece == "" || !numberPattern.MatchString(piece) {
			continue
		}
		numbers = append(numbers, piece)
	}
	return numbers
}

// Project derives the playable ticket numbers for each requested digit
// length. For every length, each normalized number contributes at most one
// candidate: the number itself when lengths match, its trailing digits when
// it is longer, nothing when it is shorter. All-zero candidates are rejected
// outright, as are candidates already covered by an entry in the bucket.
// Digit lengths that produce no candidate are omitted from the result.
func (s *NumberService) Project(numbers []string, lengths []int) map[int][]string {
	result := make(map[int][]string)
	for _, digit := range lengths {
		if digit <= 0 {
			continue
		}
		var bucket []string
		for _, number := range numbers {
			if isAllZeros(number) {
				continue
			}
			var candidate string
			switch {
			case len(number) == digit:
				candidate = number
			case len(number) > digit:
				candidate = number[len(number)-digit:]
				if isAllZeros(candidate) {
					continue
				}
			default:
				// Shorter numbers are never stretched up to a longer digit
				// length; padding only canonicalizes an already-matching
				// candidate.
				continue
			}
			candidate = padLeft(candidate, digit)
			if coveredBySuffix(bucket, candidate) {
				continue
			}
			bucket = append(bucket, candidate)
		}
		if len(bucket) > 0 {
			result[digit] = bucket
		}
	}
	return result
}

// Rebuild discards and reconstructs the whole ticket number set from the raw
// input and digit selection. Called by every setter that changes either;
// manual removals do not survive a rebuild.
func (s *NumberService) Rebuild(raw string, lengths []int) entities.TicketNumberSet {
	return entities.TicketNumberSet(s.Project(s.Normalize(raw), lengths))
}

// DedupeBySuffix removes numbers already covered by an earlier entry: exact
// duplicates, and numbers that are the trailing digits of a longer earlier
// entry. The order-reuse flow runs mixed-length numbers through this, so the
// suffix branch is live here even though projector buckets are uniform-length.
func (s *NumberService) DedupeBySuffix(numbers []string) []string {
	var kept []string
	for _, number := range numbers {
		if coveredBySuffix(kept, number) {
			continue
		}
		kept = append(kept, number)
	}
	return kept
}

// coveredBySuffix reports whether candidate is redundant against existing
// entries: present verbatim, or the exact trailing digit pattern of a longer
// entry. Within one projector bucket all entries share a length, which
// reduces this to plain equality, but the general check is what the selection
// rules specify and the reuse flow relies on it for mixed lengths.
func coveredBySuffix(entries []string, candidate string) bool {
	for _, entry := range entries {
		if entry == candidate {
			return true
		}
		if len(entry) > len(candidate) && strings.HasSuffix(entry, candidate) {
			return true
		}
	}
	return false
}

func isAllZeros(v string) bool {
	if v == "" {
		return false
	}
	for _, r := range v {
		if r != '0' {
			return false
		}
	}
	return true
}

func padLeft(v string, width int) string {
	if len(v) >= width {
		return v
	}
	return strings.Repeat("0", width-len(v)) + v
}
