package filters

import (
	"image/png"
	"math/rand"
	"os"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/soypat/raster"
)

// randomSquares creates an image with random colored squares on a black background.
func randomSquares(rng *rand.Rand, width, height, numSquares, minSize, maxSize int) *raster.Buffer {
	img := raster.NewBuffer(width, height)
	for i := 0; i < numSquares; i++ {
		size := minSize + rng.Intn(maxSize-minSize+1)
		x0, y0 := rng.Intn(width), rng.Intn(height)
		// Avoid very dark so squares are visible.
		c := raster.Pixel{
			R: uint8(64 + rng.Intn(192)),
			G: uint8(64 + rng.Intn(192)),
			B: uint8(64 + rng.Intn(192)),
		}
		for y := y0; y < min(y0+size, height); y++ {
			for x := x0; x < min(x0+size, width); x++ {
				img.SetPixel(x, y, c)
			}
		}
	}
	return img
}

func savePNG(img *raster.Buffer, path string) error {
	if err := os.MkdirAll("testdata", 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// initGPU initializes WebGPU device and queue for testing.
func initGPU(t *testing.T) (*wgpu.Device, *wgpu.Queue, bool) {
	t.Helper()

	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		t.Skip("WebGPU not available")
		return nil, nil, false
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceLowPower,
	})
	if err != nil {
		t.Skipf("No GPU adapter: %v", err)
		return nil, nil, false
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		t.Skipf("No GPU device: %v", err)
		return nil, nil, false
	}

	queue := device.GetQueue()
	return device, queue, true
}

// assertClose fails when any channel of got differs from want by more than tol.
func assertClose(t *testing.T, want, got *raster.Buffer, tol int) {
	t.Helper()
	if want.Width() != got.Width() || want.Height() != got.Height() {
		t.Fatalf("size %dx%d, want %dx%d", got.Width(), got.Height(), want.Width(), want.Height())
	}
	w, g := want.Buffer(), got.Buffer()
	for i := range w {
		if d := int(w[i]) - int(g[i]); d > tol || d < -tol {
			px := i / 3
			t.Fatalf("pixel (%d,%d) channel %d: got %d, want %d", px%want.Width(), px/want.Width(), i%3, g[i], w[i])
		}
	}
}

func TestGrayscaleGPU(t *testing.T) {
	device, queue, ok := initGPU(t)
	if !ok {
		return
	}

	rng := rand.New(rand.NewSource(42))
	src := randomSquares(rng, 256, 256, 20, 10, 50)
	if err := savePNG(src, "testdata/grayscale_gpu_input.png"); err != nil {
		t.Logf("failed to save input: %v", err)
	}

	filter, err := NewGrayscaleGPU(device, queue, GrayscaleLuma)
	if err != nil {
		t.Fatalf("NewGrayscaleGPU: %v", err)
	}
	defer filter.Cleanup()

	result, err := filter.Process(src, raster.Whole())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if err := savePNG(result, "testdata/grayscale_gpu_output.png"); err != nil {
		t.Logf("failed to save output: %v", err)
	}

	for y := 0; y < result.Height(); y++ {
		for x := 0; x < result.Width(); x++ {
			if p := result.Pixel(x, y); p.R != p.G || p.G != p.B {
				t.Fatalf("pixel (%d,%d) not grayscale: %+v", x, y, p)
			}
		}
	}
	cpu, _ := Luma(src)
	assertClose(t, cpu, result, 1)
}

func TestGrayscaleGPUModes(t *testing.T) {
	device, queue, ok := initGPU(t)
	if !ok {
		return
	}

	rng := rand.New(rand.NewSource(123))
	src := randomSquares(rng, 128, 128, 15, 10, 30)

	filter, err := NewGrayscaleGPU(device, queue, GrayscaleLuma)
	if err != nil {
		t.Fatalf("NewGrayscaleGPU: %v", err)
	}
	defer filter.Cleanup()

	for _, mode := range []GrayscaleMode{GrayscaleLuma, GrayscaleIntensity, GrayscaleValue} {
		if err := filter.Controls()[0].ChangeValue(mode); err != nil {
			t.Fatal(err)
		}
		if filter.Mode() != mode {
			t.Fatalf("mode %s not set", mode)
		}
		result, err := filter.Process(src, raster.Whole())
		if err != nil {
			t.Fatalf("Process(%s): %v", mode, err)
		}
		cpu, _ := NewGrayscale(mode).Process(src, raster.Whole())
		assertClose(t, cpu, result, 1)

		path := "testdata/grayscale_gpu_" + mode.String() + ".png"
		if err := savePNG(result, path); err != nil {
			t.Logf("failed to save %s: %v", path, err)
		}
	}
}

func TestInvertGPU(t *testing.T) {
	device, queue, ok := initGPU(t)
	if !ok {
		return
	}

	rng := rand.New(rand.NewSource(777))
	src := randomSquares(rng, 128, 128, 15, 10, 30)

	filter, err := NewInvertGPU(device, queue)
	if err != nil {
		t.Fatalf("NewInvertGPU: %v", err)
	}
	defer filter.Cleanup()

	rgba := src.RGBA()
	out, err := filter.ProcessRGBA(rgba)
	if err != nil {
		t.Fatalf("ProcessRGBA: %v", err)
	}
	for i := 0; i < len(rgba.Pix); i++ {
		want := 255 - rgba.Pix[i]
		if i%4 == 3 {
			want = rgba.Pix[i] // alpha preserved
		}
		if out.Pix[i] != want {
			t.Fatalf("byte %d: got %d, want %d", i, out.Pix[i], want)
		}
	}

	// Twice returns the original.
	once, err := filter.Process(src, raster.Whole())
	if err != nil {
		t.Fatal(err)
	}
	twice, err := filter.Process(once, raster.Whole())
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, src, twice)
}

func TestSepiaGPURegion(t *testing.T) {
	device, queue, ok := initGPU(t)
	if !ok {
		return
	}

	rng := rand.New(rand.NewSource(999))
	src := randomSquares(rng, 64, 48, 10, 8, 20)

	filter, err := NewSepiaGPU(device, queue)
	if err != nil {
		t.Fatalf("NewSepiaGPU: %v", err)
	}
	defer filter.Cleanup()

	region, _ := raster.SplitView(25)
	got, err := filter.Process(src, region)
	if err != nil {
		t.Fatal(err)
	}
	cpu, _ := NewSepia().Process(src, region)
	assertClose(t, cpu, got, 1)
	for y := 0; y < src.Height(); y++ {
		if got.Pixel(16, y) != raster.Black {
			t.Fatalf("divider missing at row %d", y)
		}
		for x := 17; x < src.Width(); x++ {
			if got.Pixel(x, y) != src.Pixel(x, y) {
				t.Fatalf("(%d,%d) modified", x, y)
			}
		}
	}
}
