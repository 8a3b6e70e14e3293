package serverutils

import "github.com/gofiber/fiber/v2"

func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	}
}

func ErrorResponse(code, message string) fiber.Map {
	return fiber.Map{
		"status":  "error",
		"code":    code,
		"message": message,
	}
}
