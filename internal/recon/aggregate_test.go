package recon

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal fixture %q: %v", s, err)
	}
	return d
}

func TestAggregateSumsPerWorker(t *testing.T) {
	contracts := []Contract{
		{ID: "c1", WorkerName: "Alice", Role: "Engineer", Status: "active"},
		{ID: "c2", WorkerName: "Bob", Role: "Designer", Status: "active"},
	}
	payments := []PaymentRecord{
		{ContractID: "c1", Amount: "1,000.50", Currency: "USD"},
		{ContractID: "c1", Amount: "500", Currency: "USD"},
		{ContractID: "c2", Amount: "2000", Currency: "USD"},
	}
	agg := Aggregate(contracts, payments, "USD")

	if agg.WorkerCount != 2 {
		t.Fatalf("worker count = %d, want 2", agg.WorkerCount)
	}
	if got := agg.PerWorker["c1"]; !got.Equal(dec(t, "1500.50")) {
		t.Fatalf("c1 total = %s, want 1500.50", got)
	}
	if got := agg.PerWorker["c2"]; !got.Equal(dec(t, "2000")) {
		t.Fatalf("c2 total = %s, want 2000", got)
	}
	if agg.Workers["c1"].Name != "Alice" {
		t.Fatalf("c1 name = %q, want Alice", agg.Workers["c1"].Name)
	}
}

// TotalCost must equal the sum of PerWorker values for any input.
func TestAggregateConservation(t *testing.T) {
	contracts := []Contract{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}}
	payments := []PaymentRecord{
		{ContractID: "c1", Amount: "10.10"},
		{ContractID: "c2", Amount: "20.20"},
		{ContractID: "c3", Amount: "not-a-number"},
		{ContractID: "c2", Amount: "0.80"},
		{ContractID: "missing", Amount: "999"},
	}
	agg := Aggregate(contracts, payments, "USD")

	sum := decimal.Zero
	for _, v := range agg.PerWorker {
		sum = sum.Add(v)
	}
	if !agg.TotalCost.Equal(sum) {
		t.Fatalf("total %s != per-worker sum %s", agg.TotalCost, sum)
	}
	if agg.WorkerCount != len(agg.PerWorker) {
		t.Fatalf("worker count %d != len(perWorker) %d", agg.WorkerCount, len(agg.PerWorker))
	}
}

func TestAggregateExcludesOtherCurrencies(t *testing.T) {
	contracts := []Contract{{ID: "c1"}, {ID: "c2"}}
	payments := []PaymentRecord{
		{ContractID: "c1", Amount: "100", Currency: "USD"},
		{ContractID: "c1", Amount: "40", Currency: "EUR"},
		{ContractID: "c2", Amount: "75", Currency: "EUR"},
	}
	agg := Aggregate(contracts, payments, "USD")

	if !agg.TotalCost.Equal(dec(t, "100")) {
		t.Fatalf("total = %s, want 100 (EUR excluded, not converted)", agg.TotalCost)
	}
	if _, ok := agg.PerWorker["c2"]; ok {
		t.Fatal("c2 has only EUR payments and must not appear")
	}
}

func TestAggregateDefaultsMissingCurrencyToUSD(t *testing.T) {
	contracts := []Contract{{ID: "c1"}}
	payments := []PaymentRecord{{ContractID: "c1", Amount: "50", Currency: ""}}
	agg := Aggregate(contracts, payments, "")
	if !agg.TotalCost.Equal(dec(t, "50")) {
		t.Fatalf("total = %s, want 50", agg.TotalCost)
	}
}

func TestAggregateExcludesZeroSumWorkers(t *testing.T) {
	contracts := []Contract{{ID: "c1"}, {ID: "c2"}}
	payments := []PaymentRecord{
		{ContractID: "c1", Amount: "100"},
		{ContractID: "c1", Amount: "-100"},
		{ContractID: "c2", Amount: "garbage"},
	}
	agg := Aggregate(contracts, payments, "USD")
	if agg.WorkerCount != 0 {
		t.Fatalf("worker count = %d, want 0 (zero sums are noise)", agg.WorkerCount)
	}
	if len(agg.PerWorker) != 0 {
		t.Fatalf("perWorker = %v, want empty", agg.PerWorker)
	}
}

func TestAggregateNameResolutionChain(t *testing.T) {
	contracts := []Contract{
		{ID: "c1", WorkerName: "Worker One", Name: "Contract One"},
		{ID: "c2", Name: "Contract Two"},
		{ID: "c3"},
		{ID: "c4"},
	}
	payments := []PaymentRecord{
		{ContractID: "c1", Amount: "1"},
		{ContractID: "c2", Amount: "1"},
		{ContractID: "c3", Amount: "1", ContractName: "Embedded Three"},
		{ContractID: "c4", Amount: "1"},
	}
	agg := Aggregate(contracts, payments, "USD")

	want := map[string]string{
		"c1": "Worker One",
		"c2": "Contract Two",
		"c3": "Embedded Three",
		"c4": "N/A",
	}
	for id, name := range want {
		if got := agg.Workers[id].Name; got != name {
			t.Fatalf("worker %s name = %q, want %q", id, got, name)
		}
	}
}
