package formatter

import (
	"errors"
	"strings"
	"testing"

	"github.com/emberlog/ember/record"
)

func TestFailureMessage_IncludesReasonAndUnformattedDump(t *testing.T) {
	buf := record.NewBuffer(64, 4)
	buf.Message = "Tomorrow is another day."
	buf.AppendI32(86400, "")

	got := FailureMessage(buf, errors.New("boom"))

	if !strings.Contains(got, "An error occurred during formatting: boom") {
		t.Errorf("FailureMessage() = %q, missing reason prefix", got)
	}
	if !strings.Contains(got, "Unformatted message:") {
		t.Errorf("FailureMessage() = %q, missing unformatted-message marker", got)
	}
	if !strings.Contains(got, "Tomorrow is another day.") {
		t.Errorf("FailureMessage() = %q, missing original message", got)
	}
	if !strings.Contains(got, "86400") {
		t.Errorf("FailureMessage() = %q, missing decoded argument", got)
	}
}
