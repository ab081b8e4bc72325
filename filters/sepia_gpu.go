package filters

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Same matrix as [NewSepia].
const sepiaTransform = `
fn transform(c: vec4<f32>) -> vec4<f32> {
    let r = 0.393 * c.r + 0.769 * c.g + 0.189 * c.b;
    let g = 0.349 * c.r + 0.686 * c.g + 0.168 * c.b;
    let b = 0.272 * c.r + 0.534 * c.g + 0.131 * c.b;
    return vec4<f32>(r, g, b, c.a);
}
`

// SepiaFilterGPU previews the sepia tone on the GPU.
type SepiaFilterGPU struct {
	PointFilterGPU
}

// NewSepiaGPU creates a GPU-accelerated sepia filter.
func NewSepiaGPU(device *wgpu.Device, queue *wgpu.Queue) (*SepiaFilterGPU, error) {
	f := &SepiaFilterGPU{}
	if err := f.Init(device, queue, sepiaTransform); err != nil {
		return nil, err
	}
	return f, nil
}
