//nolint:testpackage // Tests require internal access for thorough testing
package log

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLevel(t *testing.T) {
	prev := GetLogger().GetLevel()
	t.Cleanup(func() { GetLogger().SetLevel(prev) })

	tests := []struct {
		name string
		ok   bool
		want logrus.Level
	}{
		{"debug", true, logrus.DebugLevel},
		{"WARN", true, logrus.WarnLevel},
		{" info ", true, logrus.InfoLevel},
		{"loud", false, logrus.InfoLevel},
	}

	for _, tt := range tests {
		if got := SetLevel(tt.name); got != tt.ok {
			t.Errorf("SetLevel(%q) = %v, want %v", tt.name, got, tt.ok)
		}
		if got := GetLogger().GetLevel(); got != tt.want {
			t.Errorf("after SetLevel(%q) level = %v, want %v", tt.name, got, tt.want)
		}
	}
}
