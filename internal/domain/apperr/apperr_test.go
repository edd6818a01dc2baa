package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "not found", err: NotFoundf("product %d not found", 7), want: NotFound},
		{name: "invalid", err: InvalidRequestf("empty product id list"), want: InvalidRequest},
		{name: "seeding", err: Seeding(errors.New("copy failed")), want: SeedingFailure},
		{name: "wrapped", err: fmt.Errorf("summary: %w", NotFoundf("x")), want: NotFound},
		{name: "plain", err: errors.New("db down"), want: Internal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Fatalf("KindOf=%v want %v", got, tc.want)
			}
		})
	}
}

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	e := Seeding(cause)
	if !errors.Is(e, cause) {
		t.Fatalf("expected cause in chain")
	}
	if e.Error() != "seeding aborted, changes rolled back: boom" {
		t.Fatalf("unexpected message %q", e.Error())
	}
	if got := InvalidRequestf("invalid date range").Error(); got != "invalid date range" {
		t.Fatalf("unexpected message %q", got)
	}
	if Is(nil, Internal) {
		t.Fatalf("nil error must not match any kind")
	}
	if NotFound.String() != "not_found" || Kind(99).String() != "internal" {
		t.Fatalf("unexpected kind names")
	}
}
