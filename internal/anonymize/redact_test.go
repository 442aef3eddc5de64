package anonymize

import (
	"reflect"
	"testing"
)

func TestPatternTableOrder(t *testing.T) {
	want := []Category{
		CategoryEmail,
		CategoryPhone,
		CategoryNationalID,
		CategoryAccount,
		CategoryCurrency,
		CategoryPaymentCard,
		CategoryPostalAddress,
	}
	if got := Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestGetPatternsKeepsTableOrder(t *testing.T) {
	patterns := GetPatterns([]string{"postal-address", "contact-email", "nonexistent"})
	if len(patterns) != 2 {
		t.Fatalf("GetPatterns() returned %d patterns, want 2", len(patterns))
	}
	if patterns[0].Category != CategoryEmail || patterns[1].Category != CategoryPostalAddress {
		t.Errorf("GetPatterns() order = [%s %s], want [contact-email postal-address]",
			patterns[0].Category, patterns[1].Category)
	}
}

func TestNewRedactorDefaults(t *testing.T) {
	if got := len(NewRedactor(nil).Categories()); got != 7 {
		t.Errorf("NewRedactor(nil) enabled %d categories, want 7", got)
	}
	if got := len(NewRedactor([]string{"bogus"}).Categories()); got != 7 {
		t.Errorf("NewRedactor(bogus) enabled %d categories, want 7", got)
	}
	if got := len(NewRedactor([]string{"phone"}).Categories()); got != 1 {
		t.Errorf("NewRedactor(phone) enabled %d categories, want 1", got)
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		counts Counts
	}{
		{
			name: "contact details and account",
			text: "Contact me at jane@example.com or 555-123-4567, account# 998877.",
			want: "Contact me at [email removed] or [phone removed], [account removed].",
			counts: Counts{
				CategoryEmail:   1,
				CategoryPhone:   1,
				CategoryAccount: 1,
			},
		},
		{
			name:   "social security number",
			text:   "SSN 123-45-6789 on file",
			want:   "SSN [SSN removed] on file",
			counts: Counts{CategoryNationalID: 1},
		},
		{
			name:   "currency with separators",
			text:   "The total is $1,200.50 today",
			want:   "The total is $[amount] today",
			counts: Counts{CategoryCurrency: 1},
		},
		{
			name:   "card number",
			text:   "Card 4111 1111 1111 1111 expires",
			want:   "Card [card number removed] expires",
			counts: Counts{CategoryPaymentCard: 1},
		},
		{
			name:   "street address",
			text:   "Ship to 42 Main Street please",
			want:   "Ship to [address removed] please",
			counts: Counts{CategoryPostalAddress: 1},
		},
		{
			name: "currency redacted before address",
			text: "Wire $5 to 12 Oak Lane",
			want: "Wire $[amount] to [address removed]",
			counts: Counts{
				CategoryCurrency:      1,
				CategoryPostalAddress: 1,
			},
		},
		{
			name: "uppercase email",
			text: "Write to JANE@EXAMPLE.COM today",
			want: "Write to [email removed] today",
			counts: Counts{
				CategoryEmail: 1,
			},
		},
		{
			name:   "nothing sensitive",
			text:   "Let me know what you think.",
			want:   "Let me know what you think.",
			counts: Counts{},
		},
	}

	redactor := NewRedactor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, counts := redactor.Redact(tt.text)
			if got != tt.want {
				t.Errorf("Redact() = %q, want %q", got, tt.want)
			}
			for _, c := range Categories() {
				if counts[c] != tt.counts[c] {
					t.Errorf("Redact() count[%s] = %d, want %d", c, counts[c], tt.counts[c])
				}
			}
		})
	}
}

func TestRedactIdempotent(t *testing.T) {
	redactor := NewRedactor(nil)
	inputs := []string{
		"Contact me at jane@example.com or 555-123-4567, account# 998877.",
		"Pay $3,000 with card 4111 1111 1111 1111 from 7 Elm Road",
		"SSN 123-45-6789, account: 12345678, reach me at +1 555.123.4567",
	}

	for _, in := range inputs {
		once, _ := redactor.Redact(in)
		twice, counts := redactor.Redact(once)
		if twice != once {
			t.Errorf("second Redact() changed text: %q -> %q", once, twice)
		}
		if counts.Total() != 0 {
			t.Errorf("second Redact() counted %d replacements, want 0", counts.Total())
		}
		if redactor.IsSensitive(once) {
			t.Errorf("IsSensitive(%q) = true after redaction", once)
		}
	}
}

func TestRedactSubsetLeavesOtherData(t *testing.T) {
	redactor := NewRedactor([]string{"contact-email"})
	got, counts := redactor.Redact("jane@example.com 555-123-4567")
	if got != "[email removed] 555-123-4567" {
		t.Errorf("Redact() = %q", got)
	}
	if counts[CategoryPhone] != 0 {
		t.Errorf("disabled category counted %d matches", counts[CategoryPhone])
	}
}
