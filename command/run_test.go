// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp/tracescrub/redact"
	"github.com/hashicorp/tracescrub/trace"
)

func strPtr(s string) *string {
	return &s
}

func TestMergeConfig(t *testing.T) {
	tcs := []struct {
		name   string
		flag   []string
		cfg    redact.Config
		expect redact.Config
	}{
		{
			name:   "no flag keeps the file config",
			flag:   nil,
			cfg:    redact.Config{SensitiveNames: []string{"token"}},
			expect: redact.Config{SensitiveNames: []string{"token"}},
		},
		{
			name:   "flag wins over the file config",
			flag:   []string{"api_key"},
			cfg:    redact.Config{SensitiveNames: []string{"token"}},
			expect: redact.Config{SensitiveNames: []string{"api_key"}},
		},
		{
			name:   "flag applies without a file config",
			flag:   []string{"api_key"},
			cfg:    redact.Config{},
			expect: redact.Config{SensitiveNames: []string{"api_key"}},
		},
	}

	for _, tc := range tcs {
		c := &RunCommand{sensitiveNames: tc.flag}
		assert.Equal(t, tc.expect, c.mergeConfig(tc.cfg), tc.name)
	}
}

func TestCSVFlag_Set(t *testing.T) {
	var values []string
	f := CSVFlag{&values}

	err := f.Set("password,token, spaced")
	require.NoError(t, err)
	assert.Equal(t, []string{"password", "token", " spaced"}, values)
	assert.Equal(t, "password,token, spaced", f.String())
}

func TestWriteFrames_JSON(t *testing.T) {
	frames := []trace.RedactedCallFrame{
		{
			CallFrame: trace.CallFrame{
				Func:       "Auth::login",
				File:       "lib/Auth.pm",
				ArgsString: "'password', 'hunter2'",
				Args:       []*string{strPtr("password"), strPtr("hunter2")},
				Line:       42,
			},
			RedactedArgs: []*string{strPtr("password"), strPtr(redact.Token)},
		},
	}

	buf := new(bytes.Buffer)
	err := writeFrames(buf, frames, "json")
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)

	assert.Equal(t, "'password', 'hunter2'", decoded[0]["arguments_string"])
	assert.Equal(t, []any{"password", "hunter2"}, decoded[0]["arguments_list"])
	assert.Equal(t, []any{"password", redact.Token}, decoded[0]["redacted_arguments_list"])
	assert.Equal(t, float64(42), decoded[0]["line"])
}

func TestWriteFrames_Text(t *testing.T) {
	frames := []trace.RedactedCallFrame{
		{
			CallFrame:    trace.CallFrame{File: "bin/app", Args: []*string{}, Line: 3},
			RedactedArgs: []*string{},
		},
		{
			CallFrame: trace.CallFrame{
				Func:       "Job::start",
				File:       "lib/Job.pm",
				ArgsString: "undef, 'password', 'hunter2'",
				Args:       []*string{nil, strPtr("password"), strPtr("hunter2")},
				Line:       19,
			},
			RedactedArgs: []*string{nil, strPtr("password"), strPtr(redact.Token)},
		},
	}

	buf := new(bytes.Buffer)
	err := writeFrames(buf, frames, "text")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "bin/app:3")
	assert.Contains(t, out, "trace begun")
	assert.Contains(t, out, "Job::start(undef, password, [redacted])")
	assert.NotContains(t, out, "hunter2")
}

func TestWriteFrames_UnknownFormat(t *testing.T) {
	err := writeFrames(new(bytes.Buffer), nil, "yaml")
	assert.Error(t, err)
}

func TestRedactedDump(t *testing.T) {
	bts, err := os.ReadFile("../tests/resources/trace/login_failure.txt")
	require.NoError(t, err)

	frames, err := redact.Scrub(trace.NewLineParser(), string(bts), redact.Config{})
	require.NoError(t, err)
	require.Len(t, frames, 4)

	buf := new(bytes.Buffer)
	require.NoError(t, writeFrames(buf, frames, "text"))

	out := buf.String()
	assert.NotContains(t, out, "4111111111111111")
	assert.NotContains(t, out, "10/27")
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "alice")
}
