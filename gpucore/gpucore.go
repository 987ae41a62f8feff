// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpucore defines the GPU buffer abstraction the geolayer upload
// step targets. Buffer upload and draw-call execution stay outside the
// geometry pipeline; this package models them as interface calls so hosts
// can plug in any backend (backend/native provides one on gogpu/wgpu).
package gpucore

// BufferID is an opaque handle to a GPU buffer. Each Device implementation
// maintains the mapping between IDs and actual backend resources. IDs are
// uint64 to accommodate various backend handle sizes.
type BufferID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// BufferUsage is a bitmask specifying how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	// BufferUsageCopyDst indicates the buffer can be used as a copy
	// destination (required for queue writes).
	BufferUsageCopyDst BufferUsage = 1 << 0

	// BufferUsageVertex indicates the buffer can be bound as a vertex buffer.
	BufferUsageVertex BufferUsage = 1 << 1
)

// Device creates, writes and destroys GPU buffers. Implementations must
// tolerate Write and Destroy on IDs they did not issue (no-op).
//
// The upload step calls Device from the same thread that mutates the vertex
// store, but a Device may also be shared with other parts of a host
// application, so implementations should be safe for concurrent use.
type Device interface {
	// CreateBuffer allocates a buffer of size bytes.
	CreateBuffer(size int, usage BufferUsage) (BufferID, error)

	// WriteBuffer copies data into the buffer at the byte offset.
	WriteBuffer(id BufferID, offset uint64, data []byte)

	// DestroyBuffer releases the buffer.
	DestroyBuffer(id BufferID)
}
