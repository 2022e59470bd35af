package workflow

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTristateZeroValue(t *testing.T) {
	var ts Tristate
	assert.Equal(t, Unset, ts)
	assert.False(t, ts.IsSet())
	value, set := ts.Bool()
	assert.False(t, value)
	assert.False(t, set)
	assert.Equal(t, "unset", ts.String())
}

func TestTristateSet(t *testing.T) {
	tests := []struct {
		in      string
		want    Tristate
		wantErr bool
	}{
		{in: "true", want: True},
		{in: "1", want: True},
		{in: "false", want: False},
		{in: "F", want: False},
		{in: "unset", want: Unset},
		{in: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts := True
			err := ts.Set(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts)
		})
	}
}

func TestTristateOf(t *testing.T) {
	assert.Equal(t, True, TristateOf(true))
	assert.Equal(t, False, TristateOf(false))
}

func TestTristateFlag(t *testing.T) {
	newFlags := func() (*pflag.FlagSet, *Tristate) {
		var all Tristate
		fs := pflag.NewFlagSet("commit", pflag.ContinueOnError)
		f := fs.VarPF(&all, "all", "a", "stage all changes")
		f.NoOptDefVal = "true"
		return fs, &all
	}

	tests := []struct {
		name string
		args []string
		want Tristate
	}{
		{name: "absent", args: nil, want: Unset},
		{name: "bare long", args: []string{"--all"}, want: True},
		{name: "bare short", args: []string{"-a"}, want: True},
		{name: "explicit false", args: []string{"--all=false"}, want: False},
		{name: "explicit true", args: []string{"--all=true"}, want: True},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, all := newFlags()
			require.NoError(t, fs.Parse(tt.args))
			assert.Equal(t, tt.want, *all)
		})
	}
}
