package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError: error handler global app. Error yang lolos sampai sini
// (fiber.NewError dari middleware auth, panic recovery, dst) dibungkus jadi
// envelope JSON konsisten; selain *fiber.Error fallback ke 500 pesan asli.
// Error service objectives tidak lewat sini — sudah dipetakan controller.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return Error(c, fe.Code, fe.Message)
	}
	return Error(c, fiber.StatusInternalServerError, err.Error())
}
