package ranking

// CompetitionRanks assigns 1-based ranks to keys already sorted in
// descending order. An entry equal to its predecessor shares the
// predecessor's rank; any other entry is ranked by its position (index + 1).
//
//	[5 5 5 3 3 1] -> [1 1 1 4 4 6]
//
// Downstream displays number positions exactly this way, so the scheme must
// not be changed to dense ranking.
func CompetitionRanks(keys []int) []int {
	ranks := make([]int, len(keys))
	var prevKey, prevRank int
	for i, key := range keys {
		rank := i + 1
		if i > 0 && key == prevKey {
			rank = prevRank
		}
		ranks[i] = rank
		prevKey, prevRank = key, rank
	}
	return ranks
}
