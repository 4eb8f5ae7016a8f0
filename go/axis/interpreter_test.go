// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package axis

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestVariant_ParseIsInverseOfString(t *testing.T) {
	for _, variant := range []Variant{VariantAxis, VariantShanghai} {
		got, err := ParseVariant(variant.String())
		if err != nil {
			t.Fatalf("failed to parse %v: %v", variant, err)
		}
		if want := variant; want != got {
			t.Errorf("unexpected variant, wanted %v, got %v", want, got)
		}
	}
}

func TestVariant_ParseIgnoresCase(t *testing.T) {
	got, err := ParseVariant("Shanghai")
	if err != nil {
		t.Fatalf("failed to parse variant: %v", err)
	}
	if want := VariantShanghai; want != got {
		t.Errorf("unexpected variant, wanted %v, got %v", want, got)
	}
}

func TestVariant_UnknownNamesAreRejected(t *testing.T) {
	if _, err := ParseVariant("frontier"); err == nil {
		t.Errorf("unknown variant should be rejected")
	}
	if want, got := "Variant(7)", Variant(7).String(); want != got {
		t.Errorf("unexpected name, wanted %s, got %s", want, got)
	}
}

func TestOutcome_String(t *testing.T) {
	tests := map[Outcome]string{
		Success:    "success",
		Reverted:   "reverted",
		Fault:      "fault",
		Outcome(9): "Outcome(9)",
	}
	for outcome, want := range tests {
		if got := outcome.String(); want != got {
			t.Errorf("unexpected name, wanted %s, got %s", want, got)
		}
	}
}

func TestResult_SuccessReflectsOutcome(t *testing.T) {
	if !(Result{Outcome: Success}).Success() {
		t.Errorf("successful result not reported as success")
	}
	if (Result{Outcome: Reverted}).Success() {
		t.Errorf("reverted result reported as success")
	}
	if (Result{Outcome: Fault, Fault: ErrOutOfGas}).Success() {
		t.Errorf("faulted result reported as success")
	}
}

func TestCallKind_JsonRoundTrip(t *testing.T) {
	for _, kind := range []CallKind{Call, StaticCall, DelegateCall, CallCode, Create, Create2} {
		data, err := json.Marshal(kind)
		if err != nil {
			t.Fatalf("failed to marshal %v: %v", kind, err)
		}
		if want, got := `"`+kind.String()+`"`, string(data); want != got {
			t.Errorf("unexpected encoding, wanted %s, got %s", want, got)
		}
		var restored CallKind
		if err := json.Unmarshal(data, &restored); err != nil {
			t.Fatalf("failed to unmarshal %s: %v", data, err)
		}
		if kind != restored {
			t.Errorf("unexpected kind, wanted %v, got %v", kind, restored)
		}
	}
}

func TestCallKind_InvalidKindsAreRejected(t *testing.T) {
	if _, err := json.Marshal(CallKind(42)); err == nil {
		t.Errorf("invalid call kind should not be marshaled")
	}
	var kind CallKind
	if err := json.Unmarshal([]byte(`"jump"`), &kind); err == nil {
		t.Errorf("unknown call kind should not be unmarshaled")
	}
	var syntax *json.SyntaxError
	if err := json.Unmarshal([]byte(`{`), &kind); !errors.As(err, &syntax) {
		t.Errorf("malformed input should produce a syntax error, got %v", err)
	}
}
