package aggregate

import "sort"

// OtherClientLabel collects clients whose totals fall under the long-tail
// threshold so chart legends stay readable.
const OtherClientLabel = "Other"

// UnknownClientLabel stands in for records without a client name.
const UnknownClientLabel = "Unknown"

// otherShareThreshold is the fraction of the grand total at or below which
// a client is folded into the "Other" bucket.
const otherShareThreshold = 0.01

// ClientSlice is one segment of the client mix chart.
type ClientSlice struct {
	Client     string
	Amount     float64
	ColorToken string
}

// ClientSlices sums amounts per client and folds the long tail into a
// single "Other" slice. Major clients are ordered by descending amount;
// a client is minor when its total is at most 1% of the grand total.
// The "Other" slice appears last and only when it carries a positive
// amount, always with the muted token.
func ClientSlices(records []Record, palette []string) []ClientSlice {
	totals := make(map[string]float64, len(records))
	order := make([]string, 0, len(records))
	var grandTotal float64
	for _, r := range records {
		client := r.Client
		if client == "" {
			client = UnknownClientLabel
		}
		if _, seen := totals[client]; !seen {
			order = append(order, client)
		}
		totals[client] += r.Amount
		grandTotal += r.Amount
	}

	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})

	threshold := grandTotal * otherShareThreshold
	slices := make([]ClientSlice, 0, len(order)+1)
	var otherAmount float64
	for _, client := range order {
		amount := totals[client]
		if grandTotal > 0 && amount <= threshold {
			otherAmount += amount
			continue
		}
		slices = append(slices, ClientSlice{
			Client:     client,
			Amount:     amount,
			ColorToken: ClientColorToken(client, palette),
		})
	}
	if otherAmount > 0 {
		slices = append(slices, ClientSlice{
			Client:     OtherClientLabel,
			Amount:     otherAmount,
			ColorToken: MutedToken,
		})
	}
	return slices
}
