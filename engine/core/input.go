package core

// Button identifies a mouse button, numbered as the windowing backend does.
type Button int

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_4
	BUTTON_5
	BUTTON_6
	BUTTON_7
	BUTTON_8
	BUTTON_MAX_BUTTONS
)

// Action is what happened to a key or button.
type Action int

const (
	ACTION_RELEASE Action = iota
	ACTION_PRESS
	ACTION_REPEAT
)

// ModifierKey is a bit set of modifier keys held during an event.
type ModifierKey int

const (
	MOD_SHIFT     ModifierKey = 0x0001
	MOD_CONTROL   ModifierKey = 0x0002
	MOD_ALT       ModifierKey = 0x0004
	MOD_SUPER     ModifierKey = 0x0008
	MOD_CAPS_LOCK ModifierKey = 0x0010
	MOD_NUM_LOCK  ModifierKey = 0x0020
)

// Key code definitions. Values follow the windowing backend so codes
// travel from the backend to handlers unchanged.
type Key int

const (
	KEY_UNKNOWN       Key = -1
	KEY_SPACE         Key = 32
	KEY_APOSTROPHE    Key = 39
	KEY_COMMA         Key = 44
	KEY_MINUS         Key = 45
	KEY_PERIOD        Key = 46
	KEY_SLASH         Key = 47
	KEY_0             Key = 48
	KEY_1             Key = 49
	KEY_2             Key = 50
	KEY_3             Key = 51
	KEY_4             Key = 52
	KEY_5             Key = 53
	KEY_6             Key = 54
	KEY_7             Key = 55
	KEY_8             Key = 56
	KEY_9             Key = 57
	KEY_SEMICOLON     Key = 59
	KEY_EQUAL         Key = 61
	KEY_A             Key = 65
	KEY_B             Key = 66
	KEY_C             Key = 67
	KEY_D             Key = 68
	KEY_E             Key = 69
	KEY_F             Key = 70
	KEY_G             Key = 71
	KEY_H             Key = 72
	KEY_I             Key = 73
	KEY_J             Key = 74
	KEY_K             Key = 75
	KEY_L             Key = 76
	KEY_M             Key = 77
	KEY_N             Key = 78
	KEY_O             Key = 79
	KEY_P             Key = 80
	KEY_Q             Key = 81
	KEY_R             Key = 82
	KEY_S             Key = 83
	KEY_T             Key = 84
	KEY_U             Key = 85
	KEY_V             Key = 86
	KEY_W             Key = 87
	KEY_X             Key = 88
	KEY_Y             Key = 89
	KEY_Z             Key = 90
	KEY_LEFT_BRACKET  Key = 91
	KEY_BACKSLASH     Key = 92
	KEY_RIGHT_BRACKET Key = 93
	KEY_GRAVE         Key = 96
	KEY_ESCAPE        Key = 256
	KEY_ENTER         Key = 257
	KEY_TAB           Key = 258
	KEY_BACKSPACE     Key = 259
	KEY_INSERT        Key = 260
	KEY_DELETE        Key = 261
	KEY_RIGHT         Key = 262
	KEY_LEFT          Key = 263
	KEY_DOWN          Key = 264
	KEY_UP            Key = 265
	KEY_PAGE_UP       Key = 266
	KEY_PAGE_DOWN     Key = 267
	KEY_HOME          Key = 268
	KEY_END           Key = 269
	KEY_CAPS_LOCK     Key = 280
	KEY_SCROLL_LOCK   Key = 281
	KEY_NUM_LOCK      Key = 282
	KEY_PRINT_SCREEN  Key = 283
	KEY_PAUSE         Key = 284
	KEY_F1            Key = 290
	KEY_F2            Key = 291
	KEY_F3            Key = 292
	KEY_F4            Key = 293
	KEY_F5            Key = 294
	KEY_F6            Key = 295
	KEY_F7            Key = 296
	KEY_F8            Key = 297
	KEY_F9            Key = 298
	KEY_F10           Key = 299
	KEY_F11           Key = 300
	KEY_F12           Key = 301
	KEY_NUMPAD0       Key = 320
	KEY_NUMPAD1       Key = 321
	KEY_NUMPAD2       Key = 322
	KEY_NUMPAD3       Key = 323
	KEY_NUMPAD4       Key = 324
	KEY_NUMPAD5       Key = 325
	KEY_NUMPAD6       Key = 326
	KEY_NUMPAD7       Key = 327
	KEY_NUMPAD8       Key = 328
	KEY_NUMPAD9       Key = 329
	KEY_DECIMAL       Key = 330
	KEY_DIVIDE        Key = 331
	KEY_MULTIPLY      Key = 332
	KEY_SUBTRACT      Key = 333
	KEY_ADD           Key = 334
	KEY_NUMPAD_ENTER  Key = 335
	KEY_NUMPAD_EQUAL  Key = 336
	KEY_LSHIFT        Key = 340
	KEY_LCONTROL      Key = 341
	KEY_LALT          Key = 342
	KEY_LSUPER        Key = 343
	KEY_RSHIFT        Key = 344
	KEY_RCONTROL      Key = 345
	KEY_RALT          Key = 346
	KEY_RSUPER        Key = 347
	KEY_MENU          Key = 348
	KEYS_MAX_KEYS     Key = 349
)

func (k Key) valid() bool {
	return k >= 0 && k < KEYS_MAX_KEYS
}

func (b Button) valid() bool {
	return b >= 0 && b < BUTTON_MAX_BUTTONS
}

type KeyEvent struct {
	Key      Key
	Scancode int
	Action   Action
	Mods     ModifierKey
}

type MouseButtonEvent struct {
	Button Button
	Action Action
	Mods   ModifierKey
}

type CursorEvent struct {
	X float64
	Y float64
}

type ResizeEvent struct {
	Width  int
	Height int
}

// Mouse state structure
type MouseState struct {
	X       float64
	Y       float64
	Buttons [BUTTON_MAX_BUTTONS]bool
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS]bool
}

// InputHandler keeps the current and previous keyboard and mouse state of
// one window. A window forwards its backend events here; the game polls the
// state or listens on the event bus.
type InputHandler struct {
	keyboardCurrent  KeyboardState
	keyboardPrevious KeyboardState
	mouseCurrent     MouseState
	mousePrevious    MouseState

	events *EventBus
}

// NewInputHandler creates a handler. events may be nil, in which case state
// is tracked but nothing is fired.
func NewInputHandler(events *EventBus) *InputHandler {
	return &InputHandler{
		events: events,
	}
}

// Update copies current states to previous states. Call once per frame after
// all input for the frame has been recorded.
func (h *InputHandler) Update() {
	h.keyboardPrevious = h.keyboardCurrent
	h.mousePrevious = h.mouseCurrent
}

func (h *InputHandler) OnKey(e KeyEvent) {
	if !e.Key.valid() {
		LogDebug("ignoring unknown key %d (scancode %d)", e.Key, e.Scancode)
		return
	}
	pressed := e.Action != ACTION_RELEASE
	// Only handle this if the state actually changed.
	if h.keyboardCurrent.Keys[e.Key] == pressed {
		return
	}
	h.keyboardCurrent.Keys[e.Key] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	h.fire(code, &e)
}

func (h *InputHandler) OnMouseButton(e MouseButtonEvent) {
	if !e.Button.valid() {
		return
	}
	pressed := e.Action != ACTION_RELEASE
	if h.mouseCurrent.Buttons[e.Button] == pressed {
		return
	}
	h.mouseCurrent.Buttons[e.Button] = pressed

	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	h.fire(code, &e)
}

func (h *InputHandler) OnCursorPos(e CursorEvent) {
	if h.mouseCurrent.X == e.X && h.mouseCurrent.Y == e.Y {
		return
	}
	h.mouseCurrent.X = e.X
	h.mouseCurrent.Y = e.Y
	h.fire(EVENT_CODE_MOUSE_MOVED, &e)
}

func (h *InputHandler) fire(code SystemEventCode, data interface{}) {
	if h.events == nil {
		return
	}
	h.events.Fire(code, h, EventContext{Data: data})
}

// keyboard input
func (h *InputHandler) IsKeyDown(key Key) bool {
	return key.valid() && h.keyboardCurrent.Keys[key]
}

func (h *InputHandler) IsKeyUp(key Key) bool {
	return !h.IsKeyDown(key)
}

func (h *InputHandler) WasKeyDown(key Key) bool {
	return key.valid() && h.keyboardPrevious.Keys[key]
}

func (h *InputHandler) WasKeyUp(key Key) bool {
	return !h.WasKeyDown(key)
}

// mouse input
func (h *InputHandler) IsButtonDown(button Button) bool {
	return button.valid() && h.mouseCurrent.Buttons[button]
}

func (h *InputHandler) IsButtonUp(button Button) bool {
	return !h.IsButtonDown(button)
}

func (h *InputHandler) WasButtonDown(button Button) bool {
	return button.valid() && h.mousePrevious.Buttons[button]
}

func (h *InputHandler) WasButtonUp(button Button) bool {
	return !h.WasButtonDown(button)
}

func (h *InputHandler) MousePosition() (float64, float64) {
	return h.mouseCurrent.X, h.mouseCurrent.Y
}

func (h *InputHandler) PreviousMousePosition() (float64, float64) {
	return h.mousePrevious.X, h.mousePrevious.Y
}
