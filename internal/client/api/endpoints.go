package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/campuskit/presence/internal/client/models"
)

// API is the remote-service surface consumed by the workflow layer. Services
// depend on this interface; tests substitute fakes.
type API interface {
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Me(ctx context.Context) (*models.User, error)
	UpdateLocation(ctx context.Context, latitude, longitude float64) error
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error)

	Subjects(ctx context.Context) ([]models.Subject, error)
	Batches(ctx context.Context) ([]models.Batch, error)
	Users(ctx context.Context) ([]models.User, error)
	Students(ctx context.Context) ([]models.User, error)
	Courses(ctx context.Context) ([]models.Course, error)
	Universities(ctx context.Context) ([]models.University, error)

	CreateSubject(ctx context.Context, s models.Subject) (*models.Subject, error)
	CreateBatch(ctx context.Context, b models.Batch) (*models.Batch, error)
	CreateUser(ctx context.Context, u models.NewUser) (*models.User, error)
	CreateCourse(ctx context.Context, c models.Course) (*models.Course, error)
	CreateUniversity(ctx context.Context, u models.University) (*models.University, error)

	Window(ctx context.Context, targetBatch, targetSubject int64) (*models.AttendanceWindow, error)
	UpsertWindow(ctx context.Context, w models.WindowUpsert) (*models.AttendanceWindow, error)
	MarkAttendance(ctx context.Context, windowID int64, picture *models.CapturedImage, onBehalfOf int64) (*models.AttendanceResult, error)
}

var _ API = (*Client)(nil)

func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Login authenticates with email/password and returns the issued session.
// Persisting it is the caller's business (the auth service saves it).
func (c *Client) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	body, err := jsonPayload(map[string]string{"email": email, "password": string(password)})
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodPost, "/token/login/", body, nil)
	if err != nil {
		return nil, err
	}
	var s models.Session
	if err := decode(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	data, err := c.do(ctx, http.MethodGet, "/me/", nil, nil)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := decode(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateLocation(ctx context.Context, latitude, longitude float64) error {
	body, err := jsonPayload(map[string]float64{"latitude": latitude, "longitude": longitude})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPatch, "/me/location/", body, nil)
	return err
}

// UpdateProfile PATCHes /me/ as multipart. This endpoint reports failures
// under an "error" field, unlike the rest of the service.
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	fields := map[string]string{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Email != nil {
		fields["email"] = *update.Email
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}

	var files []filePart
	if update.Picture != nil {
		files = append(files, filePart{field: "profile_picture", name: update.Picture.Name, data: update.Picture.Data})
	}

	body, err := multipartPayload(fields, files...)
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, http.MethodPatch, "/me/", body, profileErrorFromBody)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := decode(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Subjects(ctx context.Context) ([]models.Subject, error) {
	return list[models.Subject](ctx, c, "/subjects/")
}

func (c *Client) Batches(ctx context.Context) ([]models.Batch, error) {
	return list[models.Batch](ctx, c, "/batches/")
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	return list[models.User](ctx, c, "/users/")
}

func (c *Client) Students(ctx context.Context) ([]models.User, error) {
	return list[models.User](ctx, c, "/users/students/")
}

func (c *Client) Courses(ctx context.Context) ([]models.Course, error) {
	return list[models.Course](ctx, c, "/courses/")
}

func (c *Client) Universities(ctx context.Context) ([]models.University, error) {
	return list[models.University](ctx, c, "/universities/")
}

func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var items []T
	if err := decode(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateSubject(ctx context.Context, s models.Subject) (*models.Subject, error) {
	return create[models.Subject, models.Subject](ctx, c, "/subjects/", s)
}

func (c *Client) CreateBatch(ctx context.Context, b models.Batch) (*models.Batch, error) {
	return create[models.Batch, models.Batch](ctx, c, "/batches/", b)
}

func (c *Client) CreateUser(ctx context.Context, u models.NewUser) (*models.User, error) {
	return create[models.NewUser, models.User](ctx, c, "/users/", u)
}

func (c *Client) CreateCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	return create[models.Course, models.Course](ctx, c, "/courses/", course)
}

func (c *Client) CreateUniversity(ctx context.Context, u models.University) (*models.University, error) {
	return create[models.University, models.University](ctx, c, "/universities/", u)
}

func create[In any, Out any](ctx context.Context, c *Client, path string, in In) (*Out, error) {
	body, err := jsonPayload(in)
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodPost, path, body, nil)
	if err != nil {
		return nil, err
	}
	var out Out
	if err := decode(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Window fetches the current attendance window for a batch+subject pair.
// An empty body means no window is defined; absence is also commonly
// reported as a 404, which surfaces as an *Error.
func (c *Client) Window(ctx context.Context, targetBatch, targetSubject int64) (*models.AttendanceWindow, error) {
	query := url.Values{}
	query.Set("target_batch", strconv.FormatInt(targetBatch, 10))
	query.Set("target_subject", strconv.FormatInt(targetSubject, 10))

	data, err := c.do(ctx, http.MethodGet, "/attendance/window/?"+query.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var w models.AttendanceWindow
	if err := decode(data, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) UpsertWindow(ctx context.Context, w models.WindowUpsert) (*models.AttendanceWindow, error) {
	return create[models.WindowUpsert, models.AttendanceWindow](ctx, c, "/attendance/window/", w)
}

// MarkAttendance submits the captured photo against a window. onBehalfOf is
// optional (privileged callers marking a student); zero means self.
func (c *Client) MarkAttendance(ctx context.Context, windowID int64, picture *models.CapturedImage, onBehalfOf int64) (*models.AttendanceResult, error) {
	fields := map[string]string{
		"attendance_window": strconv.FormatInt(windowID, 10),
	}
	if onBehalfOf != 0 {
		fields["user"] = strconv.FormatInt(onBehalfOf, 10)
	}

	body, err := multipartPayload(fields, filePart{field: "student_picture", name: picture.Name, data: picture.Data})
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, http.MethodPost, "/attendance/record/", body, nil)
	if err != nil {
		return nil, err
	}
	var result models.AttendanceResult
	if err := decode(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
