package csv_test

import (
	"testing"

	"github.com/shapestone/csvstream/pkg/csv"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   rune
	}{
		{"comma", "a,b,c\n1,2,3\n4,5,6\n", ','},
		{"semicolon", "a;b;c\n1;2;3\n", ';'},
		{"tab", "a\tb\n1\t2\n", '\t'},
		{"pipe", "a|b|c|d\n1|2|3|4\n", '|'},
		{"commas inside quotes", "\"x,y\";\"z,w\"\n\"1,2\";\"3,4\"\n", ';'},
		{"consistent beats frequent", "a;b,c,d\n1;2\n3;4\n", ';'},
		{"empty sample", "", ','},
		{"single column", "a\nb\nc\n", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := csv.DetectDelimiter(tt.sample); got != tt.want {
				t.Errorf("DetectDelimiter() = %q, want %q", got, tt.want)
			}
		})
	}
}
