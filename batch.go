package evergreen

import "github.com/hajimehoshi/ebiten/v2"

// batchKey groups render commands that can be submitted in a single draw call.
type batchKey struct {
	blend BlendMode
	image *ebiten.Image
}

func commandBatchKey(cmd *RenderCommand) batchKey {
	return batchKey{blend: cmd.BlendMode, image: cmd.image}
}

// maxBatchVerts keeps a single DrawTriangles32 call within Ebitengine's
// per-call vertex limit.
const maxBatchVerts = 65532

// submitBatches walks the sorted commands, coalescing consecutive same-key
// commands into a single DrawTriangles32 call.
func (r *renderer) submitBatches(target *ebiten.Image) {
	if len(r.commands) == 0 {
		return
	}
	r.batchVerts = r.batchVerts[:0]
	r.batchInds = r.batchInds[:0]

	var currentKey batchKey
	inRun := false
	for i := range r.commands {
		cmd := &r.commands[i]
		key := commandBatchKey(cmd)
		if inRun && (key != currentKey || len(r.batchVerts)+4 > maxBatchVerts) {
			r.flushBatch(target, currentKey)
		}
		currentKey = key
		inRun = true
		r.appendCommand(cmd)
	}
	r.flushBatch(target, currentKey)
}

// appendCommand appends one command's vertices and indices to the batch.
func (r *renderer) appendCommand(cmd *RenderCommand) {
	base := uint32(len(r.batchVerts))
	switch cmd.Type {
	case CommandTriangle:
		r.batchVerts = append(r.batchVerts, cmd.verts[0], cmd.verts[1], cmd.verts[2])
		r.batchInds = append(r.batchInds, base, base+1, base+2)
	case CommandSprite:
		r.batchVerts = append(r.batchVerts, cmd.verts[:]...)
		// Two triangles: TL-TR-BL, TR-BR-BL
		r.batchInds = append(r.batchInds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
}

// flushBatch submits accumulated vertices as a single DrawTriangles32 call.
func (r *renderer) flushBatch(target *ebiten.Image, key batchKey) {
	if len(r.batchVerts) == 0 || key.image == nil {
		r.batchVerts = r.batchVerts[:0]
		r.batchInds = r.batchInds[:0]
		return
	}

	var op ebiten.DrawTrianglesOptions
	op.Blend = key.blend.EbitenBlend()
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(r.batchVerts, r.batchInds, key.image, &op)

	r.batchVerts = r.batchVerts[:0]
	r.batchInds = r.batchInds[:0]
}
