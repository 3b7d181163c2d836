package detector

import "testing"

func TestMetrics_Without(t *testing.T) {
	m := Metrics{
		"latency":         150,
		"memoryUsage":     92,
		"memoryLimit":     100,
		"monthlyCost":     500,
		"budget":          300,
		"utilizationRate": 85,
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "exact match",
			patterns: []string{"budget"},
			want:     []string{"latency", "memoryLimit", "memoryUsage", "monthlyCost", "utilizationRate"},
		},
		{
			name:     "exact match needs the whole name",
			patterns: []string{"memory"},
			want:     []string{"budget", "latency", "memoryLimit", "memoryUsage", "monthlyCost", "utilizationRate"},
		},
		{
			name:     "prefix wildcard",
			patterns: []string{"memory*"},
			want:     []string{"budget", "latency", "monthlyCost", "utilizationRate"},
		},
		{
			name:     "suffix wildcard",
			patterns: []string{"*Rate"},
			want:     []string{"budget", "latency", "memoryLimit", "memoryUsage", "monthlyCost"},
		},
		{
			name:     "contains wildcard",
			patterns: []string{"*o*"},
			want:     []string{"budget", "latency"},
		},
		{
			name:     "multiple patterns",
			patterns: []string{"memory*", "*Cost", "budget"},
			want:     []string{"latency", "utilizationRate"},
		},
		{
			name: "no patterns",
			want: []string{"budget", "latency", "memoryLimit", "memoryUsage", "monthlyCost", "utilizationRate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Without(tt.patterns).Names()
			if len(got) != len(tt.want) {
				t.Fatalf("Without(%v) = %v, want %v", tt.patterns, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Without(%v) = %v, want %v", tt.patterns, got, tt.want)
					break
				}
			}
		})
	}

	if len(m) != 6 {
		t.Error("Without modified the receiver")
	}
}
