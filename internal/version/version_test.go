package version

import "testing"

func TestString(t *testing.T) {
	origVersion, origCommit, origBuild := Version, GitCommit, BuildTime
	t.Cleanup(func() {
		Version, GitCommit, BuildTime = origVersion, origCommit, origBuild
	})

	tests := []struct {
		name      string
		version   string
		commit    string
		buildTime string
		want      string
		wantFull  string
	}{
		{
			name:      "no build metadata",
			version:   "0.3.0",
			commit:    "unknown",
			buildTime: "unknown",
			want:      "0.3.0",
			wantFull:  "Version=0.3.0",
		},
		{
			name:      "commit is shortened",
			version:   "0.3.0",
			commit:    "0123456789abcdef",
			buildTime: "2026-10-01T00:00:00Z",
			want:      "0.3.0-01234567",
			wantFull:  "Version=0.3.0-01234567 BuildTime=2026-10-01T00:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, GitCommit, BuildTime = tt.version, tt.commit, tt.buildTime
			if got := String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := StringFull(); got != tt.wantFull {
				t.Errorf("StringFull() = %q, want %q", got, tt.wantFull)
			}
		})
	}
}

func TestGetCurrentVersion(t *testing.T) {
	if got := GetCurrentVersion("prod"); got != Version {
		t.Errorf("GetCurrentVersion(prod) = %q, want %q", got, Version)
	}
	if got := GetCurrentVersion("dev"); got != DevVersion {
		t.Errorf("GetCurrentVersion(dev) = %q, want %q", got, DevVersion)
	}
}
