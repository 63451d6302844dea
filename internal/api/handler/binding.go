package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"staff-registry/pkg/response"
)

// bindError 将绑定失败转换为 400 响应。
// 字段约束违规时携带逐字段错误信息，其余（JSON 语法错误等）返回通用提示。
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		response.BadRequest(c, 10001, "请求体格式错误")
		return
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[snakeCase(fe.Field())] = fieldMessage(fe)
	}
	response.ValidationFailed(c, 10001, fields)
}

// fieldMessage 按校验标签生成可读的中文提示
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "必填字段不能为空"
	case "email":
		return "邮箱格式不正确"
	case "max":
		return fmt.Sprintf("长度不能超过 %s 个字符", fe.Param())
	default:
		return fmt.Sprintf("未通过 %s 校验", fe.Tag())
	}
}

// snakeCase 将结构体字段名转换为 JSON 字段名（FullName → full_name）
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
