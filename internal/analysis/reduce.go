package analysis

// dominant returns the most frequent category in values.
//
// Ties on the highest count prefer any category other than neutral. Ties between
// several non-neutral categories go to the one listed first in priority, which is
// the order the classifier scans its table in. Categories missing from priority
// rank after those present, in order of first appearance. An empty input yields
// neutral.
func dominant[C comparable](values []C, priority []C, neutral C) C {
	if len(values) == 0 {
		return neutral
	}

	counts := make(map[C]int, len(priority)+1)
	var seen []C
	for _, value := range values {
		if _, ok := counts[value]; !ok {
			seen = append(seen, value)
		}
		counts[value]++
	}

	rank := make(map[C]int, len(priority))
	for i, category := range priority {
		rank[category] = i
	}
	rankOf := func(category C) int {
		if category == neutral {
			return len(priority) + len(seen)
		}
		if r, ok := rank[category]; ok {
			return r
		}
		for i, s := range seen {
			if s == category {
				return len(priority) + i
			}
		}
		return len(priority) + len(seen)
	}

	best := seen[0]
	for _, category := range seen[1:] {
		switch {
		case counts[category] > counts[best]:
			best = category
		case counts[category] == counts[best] && rankOf(category) < rankOf(best):
			best = category
		}
	}

	return best
}
