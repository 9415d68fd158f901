package tabular_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/droxline/stockmap/pkg/tabular"
)

func TestHasHeader(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   bool
	}{
		{
			name:   "real labels",
			labels: []string{"Article number", "Supplier stock", "Brand name"},
			want:   true,
		},
		{
			name:   "mixed case labels",
			labels: []string{"Referenz", "Bestand"},
			want:   true,
		},
		{
			name:   "two digit numeric strings are data",
			labels: []string{"01", "02"},
			want:   false,
		},
		{
			name:   "article code row mistaken for header",
			labels: []string{"RAD", "000057"},
			want:   false,
		},
		{
			name:   "uppercase alphanumeric codes",
			labels: []string{"BM91518H", "12"},
			want:   false,
		},
		{
			name:   "unnamed placeholders",
			labels: []string{"Unnamed: 0", "Unnamed: 1"},
			want:   false,
		},
		{
			name:   "placeholders mixed with numerics",
			labels: []string{"Unnamed: 0", "42"},
			want:   false,
		},
		{
			name:   "one real label rescues the row",
			labels: []string{"Reference", "000057"},
			want:   true,
		},
		{
			name:   "empty row",
			labels: nil,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tabular.HasHeader(tt.labels))
		})
	}
}
