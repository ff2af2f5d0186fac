package checksum

import (
	"testing"
)

var _ Calculator = SHA256{}

func TestSHA256_CalculateRaw(t *testing.T) {
	calc := New()

	empty := calc.CalculateRaw(nil)
	if empty != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("unexpected digest of empty input: %s", empty)
	}

	a := calc.CalculateRaw([]byte("CREATE TABLE public.t (\n    id integer\n);"))
	b := calc.CalculateRaw([]byte("CREATE TABLE public.t (\n    id  integer\n);"))
	if len(a) != 64 {
		t.Errorf("CalculateRaw() returned hash of length %d, expected 64", len(a))
	}
	if a == b {
		t.Error("raw digests must differ on whitespace changes")
	}
	if a != calc.CalculateRaw([]byte("CREATE TABLE public.t (\n    id integer\n);")) {
		t.Error("CalculateRaw() is not deterministic")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "collapses whitespace",
			input:    "CREATE  TABLE\n\tpublic.t (\n    id integer\n);\n",
			expected: "create table public.t ( id integer );",
		},
		{
			name:     "drops line comments",
			input:    "-- Tables\nCREATE TABLE public.t (id integer); -- trailing",
			expected: "create table public.t (id integer);",
		},
		{
			name:     "drops nested block comments",
			input:    "SELECT /* outer /* inner */ still */ 1;",
			expected: "select 1;",
		},
		{
			name:     "comment markers inside strings survive",
			input:    "SELECT '-- not a comment', 'it''s /* kept */';",
			expected: "select '-- not a comment', 'it''s /* kept */';",
		},
		{
			name:     "dollar-quoted bodies survive",
			input:    "AS $fn$ -- body\nSELECT 1; $fn$;",
			expected: "as $fn$ -- body\nselect 1; $fn$;",
		},
		{
			name:     "positional parameters are plain text",
			input:    "WHERE id = $1",
			expected: "where id = $1",
		},
		{
			name:     "comment between tokens keeps them apart",
			input:    "a/* x */b",
			expected: "a b",
		},
		{
			name:     "unicode letters fold",
			input:    "COMMENT ÄÖÜ",
			expected: "comment äöü",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSHA256_CalculateNormalized_IgnoresCosmeticChanges(t *testing.T) {
	calc := New()

	a := "-- Consolidated Initial Schema Migration\n\n-- Tables\nCREATE TABLE public.orders (\n    id integer NOT NULL\n);\n"
	b := "-- regenerated\nCREATE TABLE public.orders ( id integer NOT NULL );"
	c := "CREATE TABLE public.orders (id bigint NOT NULL);"

	if calc.CalculateNormalized([]byte(a)) != calc.CalculateNormalized([]byte(b)) {
		t.Error("normalized digests should match for comment and whitespace changes")
	}
	if calc.CalculateNormalized([]byte(a)) == calc.CalculateNormalized([]byte(c)) {
		t.Error("normalized digests should differ for a type change")
	}
}

func BenchmarkSHA256_CalculateNormalized(b *testing.B) {
	calc := New()
	content := []byte("-- Tables\nCREATE TABLE public.t (\n    id integer NOT NULL,\n    name text DEFAULT 'a -- b'\n);\n")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		calc.CalculateNormalized(content)
	}
}
