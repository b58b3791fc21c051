package handler

import "github.com/labstack/echo/v4"

// envelope is the standard success body: {success, data?, count?, message?}.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

// respondList includes the item count alongside the data, mirroring what
// the client's list views expect.
func respondList(c echo.Context, status int, data any, count int) error {
	return c.JSON(status, envelope{Success: true, Data: data, Count: &count})
}

func respondMessage(c echo.Context, status int, msg string) error {
	return c.JSON(status, envelope{Success: true, Message: msg})
}
