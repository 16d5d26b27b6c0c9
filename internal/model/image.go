package model

// Keypoint is a detected point of interest: pixel position, feature scale
// and orientation in degrees.
type Keypoint struct {
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	Size  float32 `json:"size"`
	Angle float32 `json:"angle"`
}

// ImageFeature represents one capture event stored in image_features.
type ImageFeature struct {
	ID           string     `json:"id"`
	Keypoints    []Keypoint `json:"keypoints"`
	Descriptors  []byte     `json:"descriptors"`
	MotionMean   float64    `json:"motion_mean"`
	MotionStd    float64    `json:"motion_std"`
	CreatedAtUTC string     `json:"created_at_utc"`
	ImgFilename  *string    `json:"img_filename,omitempty"`
	CameraID     string     `json:"camera_id"`
}

// ImageDescription represents a named image stored in image_description.
type ImageDescription struct {
	ImageName string  `json:"image_name"`
	Datetime  string  `json:"datetime"`
	CameraID  string  `json:"camera_id"`
	Anomaly   *string `json:"anomaly,omitempty"`
}

// StringPtr returns a pointer to s, for the optional record fields.
func StringPtr(s string) *string {
	return &s
}
