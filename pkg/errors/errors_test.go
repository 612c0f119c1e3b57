package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
		exitCode  int
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true, exitCode: 2},
		{code: CodeDecode, status: http.StatusUnprocessableEntity, publicMsg: "malformed record", detailsOK: true, exitCode: 3},
		{code: CodeConstraint, status: http.StatusInternalServerError, publicMsg: "internal server error", exitCode: 4},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, exitCode: 5},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected", retryable: true, exitCode: 6},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true, exitCode: 1},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
		if meta.ExitCode != tt.exitCode {
			t.Fatalf("code %s expected exit code %d got %d", tt.code, tt.exitCode, meta.ExitCode)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}
	if base.Error() != "VALIDATION_ERROR: missing foo" {
		t.Fatalf("unexpected error string %q", base.Error())
	}

	detail := map[string]any{"field": "foo"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConstraint, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConstraint {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
	if wrapped.Error() != "CONSTRAINT_VIOLATION: ctx: boom" {
		t.Fatalf("unexpected error string %q", wrapped.Error())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeDecode, "bad line")
	if got := As(err); got == nil || got.Code() != CodeDecode {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Fatalf("expected 0 for nil error, got %d", got)
	}
	if got := ExitCode(stdErrors.New("plain")); got != 1 {
		t.Fatalf("expected 1 for untyped error, got %d", got)
	}
	wrapped := fmt.Errorf("outer: %w", New(CodeDependency, "db down"))
	if got := ExitCode(wrapped); got != 5 {
		t.Fatalf("expected 5 for dependency error, got %d", got)
	}
	if got := CodeOf(wrapped); got != CodeDependency {
		t.Fatalf("expected dependency code, got %s", got)
	}
}

func TestDumpCarriesDetailsAndChain(t *testing.T) {
	err := fmt.Errorf("import: %w", Wrap(CodeDecode, stdErrors.New("not an integer"), "line 2").
		WithDetails(map[string]any{"line": 2, "content": "ZZZZ"}))

	d := Dump(err)
	if d.Code != CodeDecode {
		t.Fatalf("expected decode code, got %s", d.Code)
	}
	if len(d.Chain) != 3 {
		t.Fatalf("expected 3 chain entries, got %d: %v", len(d.Chain), d.Chain)
	}

	fields := d.Fields()
	details, ok := fields["details"].(map[string]any)
	if !ok || details["content"] != "ZZZZ" {
		t.Fatalf("expected details with line content, got %#v", fields["details"])
	}
	if _, ok := fields["sql_state"]; ok {
		t.Fatalf("sql_state should be omitted without a driver error")
	}
}

func TestDumpReadsPostgresDriverError(t *testing.T) {
	pqErr := &pq.Error{Code: "23503", Constraint: "vendas_id_produto_fkey", Table: "vendas"}
	d := Dump(Wrap(CodeConstraint, pqErr, "insert sale"))

	if d.SQLState != "23503" || d.Constraint != "vendas_id_produto_fkey" || d.Table != "vendas" {
		t.Fatalf("unexpected driver fields %+v", d)
	}
	fields := d.Fields()
	if fields["db_constraint"] != "vendas_id_produto_fkey" {
		t.Fatalf("expected db_constraint field, got %#v", fields["db_constraint"])
	}
	if _, ok := fields["details"]; ok {
		t.Fatalf("details should be omitted when unset")
	}
}
