package featuregate

import (
	"testing"

	"github.com/PennitApp/Pennit/internal/pkg/env"
)

func TestLoadMonetizationSwitch(t *testing.T) {
	tests := []struct {
		name string
		val  string
		set  bool
		want bool
	}{
		{name: "enabled", val: "true", set: true, want: true},
		{name: "disabled explicit", val: "false", set: true, want: false},
		{name: "unset", set: false, want: false},
		{name: "garbage", val: "yes", set: true, want: false},
		{name: "case sensitive", val: "TRUE", set: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.Env = map[string]string{}
			if tt.set {
				env.Env["MONETIZATION_ENABLED"] = tt.val
			}
			if got := Load().MonetizationEnabled; got != tt.want {
				t.Fatalf("Load().MonetizationEnabled = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromValue(t *testing.T) {
	if !FromValue(true).MonetizationEnabled {
		t.Fatal("expected monetization enabled")
	}
	if FromValue(false).MonetizationEnabled {
		t.Fatal("expected monetization disabled")
	}
}
