package geolayer

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/geolayer/gpucore"
)

// PrimitiveKind is the GPU primitive a batch is drawn with.
type PrimitiveKind int

const (
	// PrimPoints draws each vertex as an individual point sprite.
	PrimPoints PrimitiveKind = iota

	// PrimTriangles draws vertices as an independent triangle list.
	PrimTriangles

	// PrimLineLoop draws vertices as a closed line loop.
	PrimLineLoop
)

// Batch describes one draw call over an uploaded vertex buffer. First and
// Count are in vertices, not floats.
type Batch struct {
	Kind   PrimitiveKind
	Buffer gpucore.BufferID
	First  int
	Count  int
}

// UploadSet owns the GPU copies of a store's three vertex buffers and keeps
// them synchronized with the CPU side using the store's dirty flags. Buffers
// grow by reallocation; the renderer must re-query batches after Sync.
type UploadSet struct {
	points  gpuBuffer
	fills   gpuBuffer
	borders gpuBuffer
}

// gpuBuffer is one GPU buffer plus its allocated byte capacity.
type gpuBuffer struct {
	id  gpucore.BufferID
	cap int
}

// Sync re-uploads whichever buffers changed since the last call. Dirty
// flags are consumed only after a successful upload, so a failed frame is
// retried on the next one.
func (u *UploadSet) Sync(store *BufferStore, dev gpucore.Device) error {
	if store.Dirty(BufferPoints) {
		if err := u.points.upload(dev, store.PointVerts()); err != nil {
			return err
		}
		store.TakeDirty(BufferPoints)
	}
	if store.Dirty(BufferPolygons) {
		if err := u.fills.upload(dev, store.FillVerts()); err != nil {
			return err
		}
		if err := u.borders.upload(dev, store.BorderVerts()); err != nil {
			return err
		}
		store.TakeDirty(BufferPolygons)
	}
	return nil
}

// Batches returns the draw calls for the current store contents: one point
// batch, one batched triangle-list batch for all fills, and one line loop
// per polygon part. Empty batches are omitted, as are batches whose buffer
// has not been uploaded yet: store contents that Sync has never seen are
// not drawable.
func (u *UploadSet) Batches(store *BufferStore) []Batch {
	var batches []Batch
	if n := store.PointCount(); n > 0 && u.points.id != gpucore.InvalidID {
		batches = append(batches, Batch{Kind: PrimPoints, Buffer: u.points.id, Count: n})
	}
	if n := store.FillVertexCount(); n > 0 && u.fills.id != gpucore.InvalidID {
		batches = append(batches, Batch{Kind: PrimTriangles, Buffer: u.fills.id, Count: n})
	}
	if u.borders.id != gpucore.InvalidID {
		first := 0
		for _, n := range store.BorderCounts() {
			if n > 0 {
				batches = append(batches, Batch{Kind: PrimLineLoop, Buffer: u.borders.id, First: first, Count: n})
			}
			first += n
		}
	}
	return batches
}

// Release destroys the GPU buffers. The UploadSet may be reused afterwards.
func (u *UploadSet) Release(dev gpucore.Device) {
	for _, b := range []*gpuBuffer{&u.points, &u.fills, &u.borders} {
		if b.id != gpucore.InvalidID {
			dev.DestroyBuffer(b.id)
			b.id = gpucore.InvalidID
			b.cap = 0
		}
	}
}

func (b *gpuBuffer) upload(dev gpucore.Device, verts []float32) error {
	data := float32Bytes(verts)
	if len(data) == 0 {
		return nil
	}
	if b.id == gpucore.InvalidID || len(data) > b.cap {
		if b.id != gpucore.InvalidID {
			dev.DestroyBuffer(b.id)
			b.id = gpucore.InvalidID
			b.cap = 0
		}
		// Grow with headroom so steady ingestion does not reallocate on
		// every append.
		size := len(data) * 2
		id, err := dev.CreateBuffer(size, gpucore.BufferUsageVertex|gpucore.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		b.id = id
		b.cap = size
	}
	dev.WriteBuffer(b.id, 0, data)
	return nil
}

// float32Bytes encodes vertices in the little-endian layout GPU queues
// expect.
func float32Bytes(vals []float32) []byte {
	buf := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
