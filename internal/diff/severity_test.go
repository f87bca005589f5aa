package diff

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		changed []string
		want    Severity
	}{
		{
			name:    "empty diff is info",
			changed: nil,
			want:    SeverityInfo,
		},
		{
			name:    "unremarkable change is info",
			changed: []string{"ntp server 10.0.0.1"},
			want:    SeverityInfo,
		},
		{
			name:    "hostname change is warn",
			changed: []string{"hostname core-sw1"},
			want:    SeverityWarn,
		},
		{
			name:    "banner change is warn",
			changed: []string{"banner motd ^C unauthorized access prohibited ^C"},
			want:    SeverityWarn,
		},
		{
			name:    "interface change is critical",
			changed: []string{"interface GigabitEthernet0/1"},
			want:    SeverityCritical,
		},
		{
			name:    "access-group change is critical",
			changed: []string{" ip access-group 10 in"},
			want:    SeverityCritical,
		},
		{
			name:    "route-map change is critical",
			changed: []string{"route-map RM-OUT permit 10"},
			want:    SeverityCritical,
		},
		{
			name:    "matching is case-insensitive",
			changed: []string{"ACCESS-LIST 101 permit ip any any"},
			want:    SeverityCritical,
		},
		{
			name:    "critical outranks warn regardless of order",
			changed: []string{"hostname core-sw1", "interface Lo0"},
			want:    SeverityCritical,
		},
		{
			name:    "critical later in the set still wins",
			changed: []string{"hostname a", "hostname b", "hostname c", " ip access-group 5 out"},
			want:    SeverityCritical,
		},
		{
			name:    "bare interface word without trailing space is not critical",
			changed: []string{"description interface"},
			want:    SeverityInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.changed); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}
