package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
	}{
		{CodeValidation, http.StatusBadRequest, "validation failed", false},
		{CodeUnauthorized, http.StatusUnauthorized, "authentication required", false},
		{CodeForbidden, http.StatusForbidden, "access denied", false},
		{CodeNotFound, http.StatusNotFound, "resource not found", false},
		{CodeConflict, http.StatusConflict, "conflict detected", false},
		{CodeRateLimit, http.StatusTooManyRequests, "rate limit exceeded", false},
		{CodeInternal, http.StatusInternalServerError, "internal server error", true},
		{CodeDependency, http.StatusServiceUnavailable, "dependency unavailable", true},
	}

	for _, tc := range tests {
		meta := MetadataFor(tc.code)
		if meta.HTTPStatus != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.code, tc.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tc.publicMsg {
			t.Fatalf("%s: expected message %q, got %q", tc.code, tc.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tc.retryable {
			t.Fatalf("%s: expected retryable=%v", tc.code, tc.retryable)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected fallback to internal, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "query failed")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	inner := New(CodeNotFound, "listing not found")
	outer := fmt.Errorf("while handling request: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error in chain")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", typed.Code())
	}
}

func TestDumpWalksChain(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "ping store")

	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected at least 2 chain entries, got %d", len(dump.Chain))
	}
}

func TestDumpExtractsPostgresDiagnostics(t *testing.T) {
	pgxErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "orders_order_no_key",
		TableName:      "orders",
		Message:        "duplicate key value violates unique constraint",
	}
	dump := Dump(Wrap(CodeDependency, pgxErr, "insert order"))
	if dump.PGCode != "23505" || dump.PGConstraint != "orders_order_no_key" || dump.PGTable != "orders" {
		t.Fatalf("unexpected pgx diagnostics: %+v", dump)
	}

	pqErr := &pq.Error{
		Code:       "23503",
		Constraint: "orders_listing_id_fkey",
		Table:      "orders",
		Detail:     "Key (listing_id)=(5) is not present",
	}
	dump = Dump(Wrap(CodeDependency, pqErr, "insert order"))
	if dump.PGCode != "23503" || dump.PGConstraint != "orders_listing_id_fkey" || dump.PGDetail == "" {
		t.Fatalf("unexpected pq diagnostics: %+v", dump)
	}
}
