// Package vision turns what a gocv based detector produced for a frame into
// image feature records ready to be stored.
package vision

import (
	"fmt"
	"time"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"

	"github.com/srs-sudeep/vyuwer/internal/model"
)

// Capture bundles the detector output for one frame of one camera.
type Capture struct {
	ID          string
	CameraID    string
	Keypoints   []gocv.KeyPoint
	Descriptors gocv.Mat // gocv.NewMat() when the detector found nothing
	MotionMean  float64
	MotionStd   float64
	ImgFilename string // empty when the frame was not stored
	CapturedAt  time.Time
}

// Feature converts the capture into an ImageFeature record.
func (c *Capture) Feature() (*model.ImageFeature, error) {
	descriptors, err := Descriptors(c.Descriptors)
	if err != nil {
		return nil, err
	}

	feature := &model.ImageFeature{
		ID:           c.ID,
		Keypoints:    Keypoints(c.Keypoints),
		Descriptors:  descriptors,
		MotionMean:   c.MotionMean,
		MotionStd:    c.MotionStd,
		CreatedAtUTC: c.CapturedAt.UTC().Format(time.RFC3339),
		CameraID:     c.CameraID,
	}
	if c.ImgFilename != "" {
		feature.ImgFilename = model.StringPtr(c.ImgFilename)
	}
	return feature, nil
}

// Keypoints keeps position, size and angle of each detected keypoint.
func Keypoints(kps []gocv.KeyPoint) []model.Keypoint {
	out := make([]model.Keypoint, len(kps))
	for i, kp := range kps {
		out[i] = model.Keypoint{
			X:     float32(kp.X),
			Y:     float32(kp.Y),
			Size:  float32(kp.Size),
			Angle: float32(kp.Angle),
		}
	}
	return out
}

// Descriptors flattens a descriptor matrix row by row into raw bytes.
func Descriptors(m gocv.Mat) ([]byte, error) {
	if m.Empty() {
		return []byte{}, nil
	}
	if !m.IsContinuous() {
		return nil, fmt.Errorf("descriptor matrix is not continuous")
	}
	return m.ToBytes(), nil
}

// MotionStats returns the mean and standard deviation of the per-pixel
// absolute difference between two frames of the same camera.
func MotionStats(previous, current gocv.Mat) (mean, std float64, err error) {
	if previous.Empty() || current.Empty() {
		return 0, 0, fmt.Errorf("frame is empty")
	}

	diff := gocv.NewMat()
	defer diff.Close()
	if err := gocv.AbsDiff(previous, current, &diff); err != nil {
		return 0, 0, fmt.Errorf("failed to compute absolute difference: %v", err)
	}

	gray := diff
	if diff.Channels() == 3 {
		gray = gocv.NewMat()
		defer gray.Close()
		if err := gocv.CvtColor(diff, &gray, gocv.ColorBGRToGray); err != nil {
			return 0, 0, fmt.Errorf("failed to convert image to grayscale: %v", err)
		}
	}

	pixels := gray.ToBytes()
	values := make([]float64, len(pixels))
	for i, p := range pixels {
		values[i] = float64(p)
	}

	mean, std = stat.PopMeanStdDev(values, nil)
	return mean, std, nil
}
