package entities

import "sort"

// TicketNumberSet maps a digit length to the ordered list of projected ticket
// numbers playable at that length. Buckets keep insertion order (the order in
// which the projector first produced each number) and never contain
// duplicates. A digit length with no numbers is absent from the map, never
// present as an empty list.
type TicketNumberSet map[int][]string

// Digits returns the digit lengths that currently hold numbers, ascending.
func (s TicketNumberSet) Digits() []int {
	digits := make([]int, 0, len(s))
	for digit := range s {
		digits = append(digits, digit)
	}
	sort.Ints(digits)
	return digits
}

// Bucket returns the numbers for one digit length in insertion order.
func (s TicketNumberSet) Bucket(digit int) []string {
	return s[digit]
}

// RemoveAt removes the number at index from the given digit bucket. When the
// removal empties the bucket, the digit key is deleted from the map entirely.
// Returns false when the digit or index does not exist.
func (s TicketNumberSet) RemoveAt(digit, index int) bool {
	bucket, ok := s[digit]
	if !ok || index < 0 || index >= len(bucket) {
		return false
	}

	bucket = append(bucket[:index], bucket[index+1:]...)
	if len(bucket) == 0 {
		delete(s, digit)
	} else {
		s[digit] = bucket
	}
	return true
}

// Flatten returns all numbers across all buckets, shortest digit length
// first, preserving insertion order within each bucket.
func (s TicketNumberSet) Flatten() []string {
	flat := make([]string, 0, s.TotalCount())
	for _, digit := range s.Digits() {
		flat = append(flat, s[digit]...)
	}
	return flat
}

// TotalCount returns the number of playable ticket numbers in the set.
func (s TicketNumberSet) TotalCount() int {
	count := 0
	for _, bucket := range s {
		count += len(bucket)
	}
	return count
}

// IsEmpty reports whether no bucket holds any number.
func (s TicketNumberSet) IsEmpty() bool {
	return s.TotalCount() == 0
}
