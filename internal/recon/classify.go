package recon

import "strings"

// Classify maps a provider contract type onto exactly one category. Unknown
// types return CategoryUnclassified; they are surfaced in the report rather
// than silently dropped.
func Classify(contractType string) Category {
	switch strings.ToLower(strings.TrimSpace(contractType)) {
	case "eor":
		return CategoryEOR
	case "peo":
		return CategoryPEO
	case "ongoing_time_based", "pay_as_you_go_time_based", "milestones", "fixed_rate":
		return CategoryContractor
	default:
		return CategoryUnclassified
	}
}

// Partition splits a contract roster into category buckets plus the
// unclassified remainder. Every contract lands in exactly one bucket.
type Partition struct {
	Buckets      map[Category][]Contract
	Unclassified []Contract
}

// PartitionContracts classifies the full roster, preserving provider order
// within each bucket.
func PartitionContracts(contracts []Contract) Partition {
	p := Partition{Buckets: make(map[Category][]Contract, len(Categories))}
	for _, c := range contracts {
		cat := Classify(c.Type)
		if cat == CategoryUnclassified {
			p.Unclassified = append(p.Unclassified, c)
			continue
		}
		p.Buckets[cat] = append(p.Buckets[cat], c)
	}
	return p
}
