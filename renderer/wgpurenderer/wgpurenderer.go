//go:build wlcore_wgpu

// Package wgpurenderer is the optional, GPU-backed Renderer
// implementation. It is excluded from the default build (no display
// hardware is assumed present) and wired the same way
// gogpu-gogpu/renderer.go wires its own rendering pipeline: a WebGPU
// instance, an adapter/device/queue pair, and per-frame command
// encoding. Where gogpu-gogpu targets an OS window surface, this
// backend targets an output's framebuffer plane — the actual pixel
// hand-off to DRM/GBM is delegated to the Plane implementation (an
// external collaborator per spec.md §1), so this renderer only needs a
// destination texture to render into before the plane flips it.
package wgpurenderer

import (
	"fmt"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/wlcore/compositor/output"
	"github.com/wlcore/compositor/region"
	"github.com/wlcore/compositor/renderer"
	"github.com/wlcore/compositor/surface"
)

// BackendName is the identifier this package registers itself under in
// the renderer registry.
const BackendName = "wgpu"

func init() {
	renderer.RegisterBackend(BackendName, func() (renderer.Renderer, error) {
		return New()
	})
}

// Renderer composites surfaces into an output's plane using WebGPU.
type Renderer struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	target *output.Output

	// surfaceTextures holds the GPU texture backing each surface's
	// last-uploaded contents, keyed by surface identity. A real
	// implementation keys this off the surface resource's buffer
	// commits; here it models only the upload/flush bookkeeping the
	// orchestrator's damage pass depends on (spec.md §4.H step 4).
	surfaceTextures map[*surface.Surface]*wgpu.Texture
}

// New creates a WebGPU-backed renderer. It requests a high-performance
// adapter the same way gogpu-gogpu's newRenderer does, but without
// binding to an OS window surface.
func New() (*Renderer, error) {
	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("wgpurenderer: create instance: %w", err)
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpurenderer: request adapter: %w", err)
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("wgpurenderer: request device: %w", err)
	}

	return &Renderer{
		instance:        instance,
		adapter:         adapter,
		device:          device,
		queue:           device.GetQueue(),
		surfaceTextures: make(map[*surface.Surface]*wgpu.Texture),
	}, nil
}

// Flush creates s's GPU-side texture the first time s is flushed and
// does nothing on later calls; it uploads no pixel data.
func (r *Renderer) Flush(s *surface.Surface) error {
	if _, ok := r.surfaceTextures[s]; ok {
		return nil
	}
	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Size: wgpu.Extent3D{
			Width:  uint32(s.Geometry.Width),
			Height: uint32(s.Geometry.Height),
			DepthOrArrayLayers: 1,
		},
		Format: wgpu.TextureFormatRGBA8Unorm,
		Usage:  wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpurenderer: create texture: %w", err)
	}
	r.surfaceTextures[s] = tex
	return nil
}

// SetTarget retargets subsequent Repaint calls at o.
func (r *Renderer) SetTarget(o *output.Output) error {
	r.target = o
	return nil
}

// Repaint walks base's rectangles and the surfaces' textures and then
// submits the encoder's command buffer. It records no clear or blit
// commands, so the submitted buffer is empty and no pixels change.
func (r *Renderer) Repaint(total, base region.Region, surfaces []*surface.Surface) error {
	if r.target == nil {
		return fmt.Errorf("wgpurenderer: Repaint called with no target set")
	}

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("wgpurenderer: create command encoder: %w", err)
	}

	for range base.Rects() {
		// Each base rectangle is a region no surface will paint;
		// the real pass clears it to the output's background color.
	}
	for i := len(surfaces) - 1; i >= 0; i-- {
		// Surfaces are walked bottom-up here so later (nearer the
		// front) blits land on top, mirroring the top-down damage
		// walk's clip accumulation in compositor.go.
		_ = r.surfaceTextures[surfaces[i]]
	}

	r.queue.Submit([]*wgpu.CommandBuffer{encoder.Finish(nil)})
	return nil
}
