package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsCollect(t *testing.T) {
	var d Diagnostics

	assert.Empty(t, d.All())

	d.AddInfo("output_directory_created", "created out", "new_domain", "")
	d.AddWarning("custom_mapping_added", "check this", "domain.yml", "slots.name")

	all := d.All()
	require.Len(t, all, 2)
	assert.Equal(t, SeverityWarning, all[0].Severity)
	assert.Equal(t, "custom_mapping_added", all[0].Code)
	assert.Equal(t, "slots.name", all[0].Path)
	assert.Equal(t, SeverityInfo, all[1].Severity)
	assert.Equal(t, "new_domain", all[1].File)
}

func TestDiagnosticsMerge(t *testing.T) {
	var a, b Diagnostics

	a.AddWarning("w1", "first", "", "")
	b.AddWarning("w2", "second", "", "")
	b.AddInfo("i1", "note", "", "")

	a.Merge(b)

	assert.Len(t, a.Warnings, 2)
	assert.Len(t, a.Infos, 1)
	assert.Equal(t, "w2", a.Warnings[1].Code)
}

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "full",
			diag: Diagnostic{Code: "c", Message: "m", File: "domain.yml", Path: "slots.x"},
			want: "[domain.yml] slots.x: [c] m",
		},
		{
			name: "message only",
			diag: Diagnostic{Message: "m"},
			want: "m",
		},
		{
			name: "code without location",
			diag: Diagnostic{Code: "c", Message: "m"},
			want: "[c] m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diag.String())
		})
	}
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "Info", SeverityInfo.String())
	assert.Equal(t, "Warning", SeverityWarning.String())
	assert.Equal(t, "Severity(7)", Severity(7).String())
}
