package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordQuote(t *testing.T) {
	okBefore := testutil.ToFloat64(QuotesTotal.WithLabelValues(QuoteSourcePublic, QuoteOutcomeOK))
	errBefore := testutil.ToFloat64(QuotesTotal.WithLabelValues(QuoteSourcePublic, QuoteOutcomeError))

	RecordQuote(QuoteSourcePublic, nil, 2, 3*time.Millisecond)
	RecordQuote(QuoteSourcePublic, errors.New("boom"), 0, time.Millisecond)

	if got := testutil.ToFloat64(QuotesTotal.WithLabelValues(QuoteSourcePublic, QuoteOutcomeOK)); got != okBefore+1 {
		t.Fatalf("ok quotes want %v got %v", okBefore+1, got)
	}
	if got := testutil.ToFloat64(QuotesTotal.WithLabelValues(QuoteSourcePublic, QuoteOutcomeError)); got != errBefore+1 {
		t.Fatalf("error quotes want %v got %v", errBefore+1, got)
	}
}

func TestRecordRuleCache(t *testing.T) {
	hitsBefore := testutil.ToFloat64(RuleCacheHits)
	missesBefore := testutil.ToFloat64(RuleCacheMisses)

	RecordRuleCache(true)
	RecordRuleCache(false)
	RecordRuleCache(false)

	if got := testutil.ToFloat64(RuleCacheHits); got != hitsBefore+1 {
		t.Fatalf("cache hits want %v got %v", hitsBefore+1, got)
	}
	if got := testutil.ToFloat64(RuleCacheMisses); got != missesBefore+2 {
		t.Fatalf("cache misses want %v got %v", missesBefore+2, got)
	}
}

func TestRecordRuleStatusTransitionIgnoresEmpty(t *testing.T) {
	before := testutil.ToFloat64(RuleStatusTransitions.WithLabelValues("expired"))
	RecordRuleStatusTransition("expired", 0)
	RecordRuleStatusTransition("expired", 3)
	if got := testutil.ToFloat64(RuleStatusTransitions.WithLabelValues("expired")); got != before+3 {
		t.Fatalf("transitions want %v got %v", before+3, got)
	}
}
