//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native provides a Pure Go gpucore.Device implementation backed by
// gogpu/wgpu's hardware abstraction layer.
package native

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	"github.com/gogpu/geolayer/gpucore"
)

// Device implements gpucore.Device over a hal.Device and hal.Queue supplied
// by the host application. geolayer receives the device from the host, it
// does not create one, so GPU resources stay shared across the stack.
//
// Device is safe for concurrent use: the resource map is protected by a
// mutex and IDs are generated atomically.
type Device struct {
	mu      sync.RWMutex
	device  hal.Device
	queue   hal.Queue
	nextID  atomic.Uint64
	buffers map[gpucore.BufferID]hal.Buffer
}

// NewDevice wraps the given HAL device and queue.
func NewDevice(device hal.Device, queue hal.Queue) (*Device, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("native: device and queue are required")
	}
	d := &Device{
		device:  device,
		queue:   queue,
		buffers: make(map[gpucore.BufferID]hal.Buffer),
	}
	// Start ID generation at 1 (0 is invalid).
	d.nextID.Store(1)
	return d, nil
}

// CreateBuffer creates a GPU buffer.
func (d *Device) CreateBuffer(size int, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	if size <= 0 {
		return gpucore.InvalidID, fmt.Errorf("native: buffer size must be positive")
	}

	buffer, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "geolayer-vertex",
		Size:  uint64(size),
		Usage: convertBufferUsage(usage),
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: failed to create buffer: %w", err)
	}

	id := gpucore.BufferID(d.nextID.Add(1) - 1)

	d.mu.Lock()
	d.buffers[id] = buffer
	d.mu.Unlock()

	return id, nil
}

// WriteBuffer writes data to a buffer. Unknown IDs are ignored.
func (d *Device) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	d.mu.RLock()
	buffer, ok := d.buffers[id]
	d.mu.RUnlock()

	if ok && len(data) > 0 {
		d.queue.WriteBuffer(buffer, offset, data)
	}
}

// DestroyBuffer releases a GPU buffer. Unknown IDs are ignored.
func (d *Device) DestroyBuffer(id gpucore.BufferID) {
	d.mu.Lock()
	buffer, ok := d.buffers[id]
	if ok {
		delete(d.buffers, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyBuffer(buffer)
	}
}

// Release destroys every buffer still tracked by the device wrapper.
func (d *Device) Release() {
	d.mu.Lock()
	buffers := d.buffers
	d.buffers = make(map[gpucore.BufferID]hal.Buffer)
	d.mu.Unlock()

	for _, b := range buffers {
		d.device.DestroyBuffer(b)
	}
}

// convertBufferUsage converts gpucore.BufferUsage to types.BufferUsage.
func convertBufferUsage(usage gpucore.BufferUsage) types.BufferUsage {
	var result types.BufferUsage
	if usage&gpucore.BufferUsageCopyDst != 0 {
		result |= types.BufferUsageCopyDst
	}
	if usage&gpucore.BufferUsageVertex != 0 {
		result |= types.BufferUsageVertex
	}
	return result
}
