package components

import (
	"github.com/spaghettifunk/onyx/engine/math"
)

// Projection selects how a camera maps view space to clip space.
type Projection uint8

const (
	ProjectionPerspective Projection = iota
	ProjectionOrthographic
)

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

const (
	defaultFov    float32 = 45.0
	defaultNear   float32 = 0.1
	defaultFar    float32 = 1000.0
	defaultAspect float32 = 4.0 / 3.0
)

/**
 * @brief Represents a camera that can be used for
 * a variety of things, especially rendering. A window attached
 * to a perspective camera keeps its aspect ratio in sync with
 * the framebuffer.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position math.Vec3
	/**
	 * @brief The rotation of this camera using Euler angles (pitch, yaw, roll).
	 * NOTE: Do not set this directly, use SetEulerRotation() instead
	 * so the view matrix is recalculated when needed.
	 */
	EulerRotation math.Vec3
	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: IMPORTANT: Do not get this directly, use GetView() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix math.Mat4

	projection      Projection
	fovRadians      float32
	aspectRatio     float32
	nearClip        float32
	farClip         float32
	orthoBounds     math.Extents2D
	projectionDirty bool
	projectionMat   math.Mat4
}

// NewCamera creates a perspective camera with a 45 degree field of view.
func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

// NewOrthographicCamera creates a camera projecting the given rectangle.
func NewOrthographicCamera(left, right, bottom, top float32) *Camera {
	camera := NewCamera()
	camera.SetOrthographic(left, right, bottom, top)
	return camera
}

func (c *Camera) Reset() {
	c.EulerRotation = math.NewVec3Zero()
	c.Position = math.NewVec3Zero()
	c.IsDirty = false
	c.ViewMatrix = math.NewMat4Identity()

	c.projection = ProjectionPerspective
	c.fovRadians = math.DegToRad(defaultFov)
	c.aspectRatio = defaultAspect
	c.nearClip = defaultNear
	c.farClip = defaultFar
	c.orthoBounds = math.Extents2D{}
	c.projectionDirty = true
}

func (c *Camera) IsPerspective() bool {
	return c.projection == ProjectionPerspective
}

func (c *Camera) Projection() Projection {
	return c.projection
}

// SetPerspective switches to a perspective projection, keeping the current aspect ratio.
func (c *Camera) SetPerspective(fovRadians, nearClip, farClip float32) {
	c.projection = ProjectionPerspective
	c.fovRadians = fovRadians
	c.nearClip = nearClip
	c.farClip = farClip
	c.projectionDirty = true
}

// SetOrthographic switches to an orthographic projection of the given rectangle.
func (c *Camera) SetOrthographic(left, right, bottom, top float32) {
	c.projection = ProjectionOrthographic
	c.orthoBounds = math.Extents2D{
		Min: math.NewVec2(left, bottom),
		Max: math.NewVec2(right, top),
	}
	c.projectionDirty = true
}

func (c *Camera) AspectRatio() float32 {
	return c.aspectRatio
}

// SetAspectRatio stores the width/height ratio used by the perspective projection.
// Non-positive ratios are ignored.
func (c *Camera) SetAspectRatio(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.aspectRatio = aspect
	c.projectionDirty = true
}

func (c *Camera) GetProjection() math.Mat4 {
	if c.projectionDirty {
		if c.projection == ProjectionPerspective {
			c.projectionMat = math.NewMat4Perspective(c.fovRadians, c.aspectRatio, c.nearClip, c.farClip)
		} else {
			b := c.orthoBounds
			c.projectionMat = math.NewMat4Orthographic(b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, -1.0, 1.0)
		}
		c.projectionDirty = false
	}
	return c.projectionMat
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
	c.IsDirty = true
}

func (c *Camera) GetEulerRotation() math.Vec3 {
	return c.EulerRotation
}

func (c *Camera) SetEulerRotation(rotation math.Vec3) {
	c.EulerRotation = rotation
	c.IsDirty = true
}

func (c *Camera) GetView() math.Mat4 {
	if c.IsDirty {
		rotation := math.NewMat4EulerXYZ(c.EulerRotation.X, c.EulerRotation.Y, c.EulerRotation.Z)
		translation := math.NewMat4Translation(c.Position)

		c.ViewMatrix = rotation.Mul(translation).Inverse()
		c.IsDirty = false
	}
	return c.ViewMatrix
}

func (c *Camera) Forward() math.Vec3 {
	view := c.GetView()
	return view.Forward()
}

func (c *Camera) Backward() math.Vec3 {
	view := c.GetView()
	return view.Backward()
}

func (c *Camera) Left() math.Vec3 {
	view := c.GetView()
	return view.Left()
}

func (c *Camera) Right() math.Vec3 {
	view := c.GetView()
	return view.Right()
}

func (c *Camera) move(direction math.Vec3, amount float32) {
	c.Position = c.Position.Add(direction.MulScalar(amount))
	c.IsDirty = true
}

func (c *Camera) MoveForward(amount float32) {
	c.move(c.Forward(), amount)
}

func (c *Camera) MoveBackward(amount float32) {
	c.move(c.Backward(), amount)
}

func (c *Camera) MoveLeft(amount float32) {
	c.move(c.Left(), amount)
}

func (c *Camera) MoveRight(amount float32) {
	c.move(c.Right(), amount)
}

func (c *Camera) MoveUp(amount float32) {
	c.move(math.NewVec3Up(), amount)
}

func (c *Camera) MoveDown(amount float32) {
	c.move(math.NewVec3Down(), amount)
}

func (c *Camera) Yaw(amount float32) {
	c.EulerRotation.Y += amount
	c.IsDirty = true
}

func (c *Camera) Pitch(amount float32) {
	c.EulerRotation.X += amount

	// Clamp to avoid Gimbal lock.
	limit := float32(1.55334306) // 89 degrees
	c.EulerRotation.X = math.Clamp(c.EulerRotation.X, -limit, limit)

	c.IsDirty = true
}
