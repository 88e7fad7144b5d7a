package components

import (
	"testing"

	"github.com/spaghettifunk/onyx/engine/math"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	if !c.IsPerspective() || c.Projection() != ProjectionPerspective {
		t.Fatal("default camera should be perspective")
	}
	if c.AspectRatio() != defaultAspect {
		t.Fatalf("AspectRatio = %v, want %v", c.AspectRatio(), defaultAspect)
	}
	if c.GetView() != math.NewMat4Identity() {
		t.Fatal("default view should be identity")
	}
}

func TestCameraAspectRatioRebuildsProjection(t *testing.T) {
	c := NewCamera()
	before := c.GetProjection()

	c.SetAspectRatio(2)
	after := c.GetProjection()

	if c.AspectRatio() != 2 {
		t.Fatalf("AspectRatio = %v, want 2", c.AspectRatio())
	}
	if before.Data[0] == after.Data[0] {
		t.Fatal("projection not rebuilt after aspect change")
	}
	want := math.NewMat4Perspective(math.DegToRad(defaultFov), 2, defaultNear, defaultFar)
	if after != want {
		t.Fatalf("projection = %v, want %v", after.Data, want.Data)
	}
}

func TestCameraIgnoresNonPositiveAspect(t *testing.T) {
	c := NewCamera()
	c.SetAspectRatio(1.5)
	c.SetAspectRatio(0)
	c.SetAspectRatio(-3)
	if c.AspectRatio() != 1.5 {
		t.Fatalf("AspectRatio = %v, want 1.5", c.AspectRatio())
	}
}

func TestOrthographicCamera(t *testing.T) {
	c := NewOrthographicCamera(-1, 1, -1, 1)
	if c.IsPerspective() {
		t.Fatal("orthographic camera reports perspective")
	}
	if got := c.GetProjection(); got != math.NewMat4Orthographic(-1, 1, -1, 1, -1, 1) {
		t.Fatalf("projection = %v", got.Data)
	}

	c.SetPerspective(math.DegToRad(60), 0.5, 50)
	if !c.IsPerspective() {
		t.Fatal("SetPerspective did not switch projection")
	}
}

func TestCameraMovement(t *testing.T) {
	c := NewCamera()
	c.MoveForward(2)
	if got := c.GetPosition(); !got.Compare(math.NewVec3(0, 0, -2), 1e-5) {
		t.Fatalf("after MoveForward position = %v", got)
	}
	c.MoveUp(1)
	c.MoveRight(3)
	if got := c.GetPosition(); !got.Compare(math.NewVec3(3, 1, -2), 1e-5) {
		t.Fatalf("after MoveUp/MoveRight position = %v", got)
	}

	view := c.GetView()
	if got := math.NewVec3(3, 1, -2).Transform(view); !got.Compare(math.NewVec3Zero(), 1e-5) {
		t.Fatalf("camera position in view space = %v, want origin", got)
	}
}

func TestCameraPitchIsClamped(t *testing.T) {
	c := NewCamera()
	c.Pitch(10)
	if c.GetEulerRotation().X > 1.56 {
		t.Fatalf("pitch = %v, want clamped below 90 degrees", c.GetEulerRotation().X)
	}
	c.Pitch(-20)
	if c.GetEulerRotation().X < -1.56 {
		t.Fatalf("pitch = %v, want clamped above -90 degrees", c.GetEulerRotation().X)
	}
}

func TestCameraReset(t *testing.T) {
	c := NewOrthographicCamera(0, 10, 0, 10)
	c.SetPosition(math.NewVec3(1, 2, 3))
	c.SetAspectRatio(3)
	c.Reset()
	if !c.IsPerspective() || c.GetPosition() != math.NewVec3Zero() || c.AspectRatio() != defaultAspect {
		t.Fatal("Reset did not restore defaults")
	}
}
