package filters

import (
	_ "embed"
	"image"
	"strings"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
	"github.com/soypat/raster"
)

//go:embed point-filter-gpu.wgsl
var baseShaderWGSL string

// PointFilterGPU runs a per-pixel WGSL transform as a compute shader.
// Concrete filters embed it and supply
//
//	fn transform(c: vec4<f32>) -> vec4<f32>
//
// Shaders compute in float32 and round on output, so results may differ from
// the CPU filters by one level. Use them for previews.
type PointFilterGPU struct {
	mu     sync.Mutex
	gpu    gpuResources
	Params [4]float32 // [0]=width, [1]=height, [2..3]=filter params
	ready  bool
}

type gpuResources struct {
	device   *wgpu.Device
	queue    *wgpu.Queue
	module   *wgpu.ShaderModule
	pipeline *wgpu.ComputePipeline
	layout   *wgpu.BindGroupLayout
	uniforms *wgpu.Buffer
	in, out  *wgpu.Buffer
	width    int
	height   int
	pix      []byte // RGBA8888 staging for upload and readback.
}

const errGPUNotReady = errorString("gpu filter not initialized")

var _ raster.Filter = (*PointFilterGPU)(nil)

// Init compiles the shader with transformCode and allocates the pipeline.
func (f *PointFilterGPU) Init(device *wgpu.Device, queue *wgpu.Queue, transformCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	code := strings.Replace(baseShaderWGSL, "// TRANSFORM_PLACEHOLDER", transformCode, 1)
	g := &f.gpu
	g.device, g.queue = device, queue

	var err error
	g.module, err = device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
	if err != nil {
		return errors.Wrap(err, "shader module")
	}
	g.pipeline, err = device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Compute: wgpu.ProgrammableStageDescriptor{Module: g.module, EntryPoint: "main"},
	})
	if err != nil {
		return errors.Wrap(err, "compute pipeline")
	}
	g.layout = g.pipeline.GetBindGroupLayout(0)
	g.uniforms, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  uint64(len(f.Params) * 4),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return errors.Wrap(err, "uniform buffer")
	}
	f.ready = true
	return nil
}

// Process implements [raster.Filter]. The shader transforms the whole image and
// region selects which pixels take its output.
func (f *PointFilterGPU) Process(src *raster.Buffer, region raster.Region) (*raster.Buffer, error) {
	if err := raster.RequireImage("gpu filter", src); err != nil {
		return nil, err
	}
	sel, err := region.Bind(src)
	if err != nil {
		return nil, err
	}
	w, h := src.Width(), src.Height()

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureBuffers(w, h); err != nil {
		return nil, err
	}
	pix := f.gpu.pix
	for y := 0; y < h; y++ {
		row := src.Row(y)
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = row[x*3], row[x*3+1], row[x*3+2], 255
		}
	}
	if err := f.run(); err != nil {
		return nil, err
	}
	out := raster.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		row := out.Row(y)
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			row[x*3], row[x*3+1], row[x*3+2] = pix[i], pix[i+1], pix[i+2]
		}
	}
	return sel.Compose(src, out), nil
}

// ProcessRGBA runs the shader over img, alpha included, and returns a new image.
func (f *PointFilterGPU) ProcessRGBA(img *image.RGBA) (*image.RGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureBuffers(w, h); err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		copy(f.gpu.pix[y*w*4:(y+1)*w*4], img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):])
	}
	if err := f.run(); err != nil {
		return nil, err
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	copy(out.Pix, f.gpu.pix)
	return out, nil
}

// run uploads the staging pixels, dispatches the shader and reads the result
// back into the staging pixels. f.mu must be held.
func (f *PointFilterGPU) run() error {
	g := &f.gpu
	g.queue.WriteBuffer(g.in, 0, g.pix)
	f.Params[0], f.Params[1] = float32(g.width), float32(g.height)
	g.queue.WriteBuffer(g.uniforms, 0, wgpu.ToBytes(f.Params[:]))
	if err := f.dispatch(); err != nil {
		return err
	}
	return f.readback()
}

// ensureBuffers sizes the storage buffers for a w x h image. f.mu must be held.
func (f *PointFilterGPU) ensureBuffers(w, h int) error {
	if !f.ready {
		return errGPUNotReady
	}
	g := &f.gpu
	if w == g.width && h == g.height {
		return nil
	}
	f.releaseImageBuffers()

	size := uint64(w * h * 4)
	var err error
	g.in, err = g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  size,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return errors.Wrap(err, "input buffer")
	}
	g.out, err = g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  size,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc,
	})
	if err != nil {
		return errors.Wrap(err, "output buffer")
	}
	g.pix = make([]byte, size)
	g.width, g.height = w, h
	return nil
}

func (f *PointFilterGPU) dispatch() error {
	g := &f.gpu
	group, err := g.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: g.layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: g.uniforms, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: g.in, Size: wgpu.WholeSize},
			{Binding: 2, Buffer: g.out, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return errors.Wrap(err, "bind group")
	}
	defer group.Release()

	encoder, err := g.device.CreateCommandEncoder(nil)
	if err != nil {
		return errors.Wrap(err, "command encoder")
	}
	defer encoder.Release()

	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(g.pipeline)
	pass.SetBindGroup(0, group, nil)
	pass.DispatchWorkgroups(uint32((g.width+7)/8), uint32((g.height+7)/8), 1) // 8x8 workgroups.
	pass.End()
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return errors.Wrap(err, "finish")
	}
	g.queue.Submit(cmd)
	return nil
}

func (f *PointFilterGPU) readback() error {
	g := &f.gpu
	size := uint64(len(g.pix))
	staging, err := g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  size,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return errors.Wrap(err, "staging buffer")
	}
	defer staging.Release()

	encoder, err := g.device.CreateCommandEncoder(nil)
	if err != nil {
		return errors.Wrap(err, "readback encoder")
	}
	encoder.CopyBufferToBuffer(g.out, 0, staging, 0, size)
	cmd, err := encoder.Finish(nil)
	encoder.Release()
	if err != nil {
		return errors.Wrap(err, "readback finish")
	}
	g.queue.Submit(cmd)
	g.device.Poll(true, nil)

	done := make(chan error, 1)
	staging.MapAsync(wgpu.MapModeRead, 0, size, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			done <- errors.Errorf("map failed: %v", status)
			return
		}
		done <- nil
	})
	g.device.Poll(true, nil)
	if err := <-done; err != nil {
		return err
	}
	copy(g.pix, staging.GetMappedRange(0, uint(size)))
	staging.Unmap()
	return nil
}

func (f *PointFilterGPU) releaseImageBuffers() {
	g := &f.gpu
	for _, b := range []**wgpu.Buffer{&g.in, &g.out} {
		if *b != nil {
			(*b).Release()
			*b = nil
		}
	}
	g.width, g.height, g.pix = 0, 0, nil
}

// Cleanup releases all GPU resources. The filter must be initialized again before reuse.
func (f *PointFilterGPU) Cleanup() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.releaseImageBuffers()
	g := &f.gpu
	if g.uniforms != nil {
		g.uniforms.Release()
	}
	if g.layout != nil {
		g.layout.Release()
	}
	if g.pipeline != nil {
		g.pipeline.Release()
	}
	if g.module != nil {
		g.module.Release()
	}
	f.ready = false
}

// SetParam sets filter parameter 0 or 1, read by shaders as u.param0 and u.param1.
func (f *PointFilterGPU) SetParam(index int, value float32) {
	if index < 0 || index > 1 {
		return
	}
	f.mu.Lock()
	f.Params[2+index] = value
	f.mu.Unlock()
}

// Controls implements [raster.Filter]. Embedding filters override it.
func (f *PointFilterGPU) Controls() []raster.Control { return nil }
