//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"testing"

	types "github.com/gogpu/gputypes"

	"github.com/gogpu/geolayer/gpucore"
)

func TestNewDeviceRequiresHAL(t *testing.T) {
	if _, err := NewDevice(nil, nil); err == nil {
		t.Error("NewDevice(nil, nil) should fail")
	}
}

func TestConvertBufferUsage(t *testing.T) {
	tests := []struct {
		name  string
		usage gpucore.BufferUsage
		want  types.BufferUsage
	}{
		{"none", 0, 0},
		{"copy dst", gpucore.BufferUsageCopyDst, types.BufferUsageCopyDst},
		{"vertex", gpucore.BufferUsageVertex, types.BufferUsageVertex},
		{
			"vertex and copy dst",
			gpucore.BufferUsageVertex | gpucore.BufferUsageCopyDst,
			types.BufferUsageVertex | types.BufferUsageCopyDst,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertBufferUsage(tt.usage); got != tt.want {
				t.Errorf("convertBufferUsage(%v) = %v, want %v", tt.usage, got, tt.want)
			}
		})
	}
}
