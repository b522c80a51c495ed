package i18n

// messages 各语言的消息表，三种语言的键集合保持一致
var messages = map[string]map[string]string{
	LocaleZH: {
		"error.bad_request":                 "请求参数错误",
		"error.unauthorized":                "未登录或登录已失效",
		"error.forbidden":                   "没有权限执行该操作",
		"error.super_admin_required":        "仅超级管理员可执行该操作",
		"error.not_found":                   "资源不存在",
		"error.internal":                    "服务器内部错误",
		"error.query_failed":                "查询失败",
		"error.save_failed":                 "保存失败",
		"error.delete_failed":               "删除失败",
		"error.jwt_secret_missing":          "服务端未配置 JWT 密钥",
		"error.auth_header_missing":         "缺少 Authorization 请求头",
		"error.auth_header_invalid":         "Authorization 请求头格式错误",
		"error.token_invalid":               "登录凭证无效",
		"error.token_revoked":               "登录凭证已失效，请重新登录",
		"error.admin_id_invalid":            "管理员 ID 无效",
		"error.admin_id_type_invalid":       "管理员 ID 类型错误",
		"error.admin_not_found":             "管理员不存在",
		"error.admin_login_invalid":         "用户名或密码错误",
		"error.login_failed":                "登录失败",
		"error.login_too_many":              "登录尝试过于频繁，请 %d 秒后再试",
		"error.rate_limited":                "请求过于频繁，请 %d 秒后再试",
		"error.quote_too_many":              "报价请求过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable":      "限流服务暂不可用",
		"error.password_weak":               "密码强度不足",
		"error.password_min_length":         "密码长度至少 %d 位",
		"error.password_require_upper":      "密码需包含大写字母",
		"error.password_require_lower":      "密码需包含小写字母",
		"error.password_require_number":     "密码需包含数字",
		"error.password_require_special":    "密码需包含特殊字符",
		"error.password_old_invalid":        "原密码错误",
		"error.password_unchanged":          "新密码不能与原密码相同",
		"error.venue_id_invalid":            "场馆 ID 无效",
		"error.venue_not_found":             "场馆不存在",
		"error.venue_inactive":              "场馆已停用",
		"error.venue_invalid":               "场馆信息无效",
		"error.venue_code_exists":           "场馆编码已存在",
		"error.asset_id_invalid":            "场地 ID 无效",
		"error.asset_not_found":             "场地不存在",
		"error.asset_inactive":              "场地暂不可预订",
		"error.asset_invalid":               "场地信息无效",
		"error.asset_code_exists":           "场地编码已存在",
		"error.pricing_rule_id_invalid":     "价格规则 ID 无效",
		"error.pricing_rule_not_found":      "价格规则不存在",
		"error.pricing_rule_invalid":        "价格规则无效",
		"error.pricing_rule_field_invalid":  "价格规则字段无效：%s",
		"error.pricing_rule_status_invalid": "价格规则状态无效",
		"error.quote_invalid":               "报价参数无效",
		"error.quote_range_invalid":         "结束时间必须晚于开始时间",
		"error.quote_too_long":              "预订时长不能超过 %d 小时",
		"error.quote_failed":                "报价失败",
		"error.role_invalid":                "角色无效",
		"error.role_not_found":              "角色不存在",
	},
	LocaleTW: {
		"error.bad_request":                 "請求參數錯誤",
		"error.unauthorized":                "未登入或登入已失效",
		"error.forbidden":                   "沒有權限執行該操作",
		"error.super_admin_required":        "僅超級管理員可執行該操作",
		"error.not_found":                   "資源不存在",
		"error.internal":                    "伺服器內部錯誤",
		"error.query_failed":                "查詢失敗",
		"error.save_failed":                 "儲存失敗",
		"error.delete_failed":               "刪除失敗",
		"error.jwt_secret_missing":          "伺服器未設定 JWT 金鑰",
		"error.auth_header_missing":         "缺少 Authorization 請求標頭",
		"error.auth_header_invalid":         "Authorization 請求標頭格式錯誤",
		"error.token_invalid":               "登入憑證無效",
		"error.token_revoked":               "登入憑證已失效，請重新登入",
		"error.admin_id_invalid":            "管理員 ID 無效",
		"error.admin_id_type_invalid":       "管理員 ID 類型錯誤",
		"error.admin_not_found":             "管理員不存在",
		"error.admin_login_invalid":         "使用者名稱或密碼錯誤",
		"error.login_failed":                "登入失敗",
		"error.login_too_many":              "登入嘗試過於頻繁，請 %d 秒後再試",
		"error.rate_limited":                "請求過於頻繁，請 %d 秒後再試",
		"error.quote_too_many":              "報價請求過於頻繁，請 %d 秒後再試",
		"error.rate_limit_unavailable":      "限流服務暫不可用",
		"error.password_weak":               "密碼強度不足",
		"error.password_min_length":         "密碼長度至少 %d 位",
		"error.password_require_upper":      "密碼需包含大寫字母",
		"error.password_require_lower":      "密碼需包含小寫字母",
		"error.password_require_number":     "密碼需包含數字",
		"error.password_require_special":    "密碼需包含特殊字元",
		"error.password_old_invalid":        "原密碼錯誤",
		"error.password_unchanged":          "新密碼不能與原密碼相同",
		"error.venue_id_invalid":            "場館 ID 無效",
		"error.venue_not_found":             "場館不存在",
		"error.venue_inactive":              "場館已停用",
		"error.venue_invalid":               "場館資訊無效",
		"error.venue_code_exists":           "場館編碼已存在",
		"error.asset_id_invalid":            "場地 ID 無效",
		"error.asset_not_found":             "場地不存在",
		"error.asset_inactive":              "場地暫不可預訂",
		"error.asset_invalid":               "場地資訊無效",
		"error.asset_code_exists":           "場地編碼已存在",
		"error.pricing_rule_id_invalid":     "價格規則 ID 無效",
		"error.pricing_rule_not_found":      "價格規則不存在",
		"error.pricing_rule_invalid":        "價格規則無效",
		"error.pricing_rule_field_invalid":  "價格規則欄位無效：%s",
		"error.pricing_rule_status_invalid": "價格規則狀態無效",
		"error.quote_invalid":               "報價參數無效",
		"error.quote_range_invalid":         "結束時間必須晚於開始時間",
		"error.quote_too_long":              "預訂時長不能超過 %d 小時",
		"error.quote_failed":                "報價失敗",
		"error.role_invalid":                "角色無效",
		"error.role_not_found":              "角色不存在",
	},
	LocaleEN: {
		"error.bad_request":                 "Invalid request parameters",
		"error.unauthorized":                "Not signed in or session expired",
		"error.forbidden":                   "You do not have permission to perform this action",
		"error.super_admin_required":        "Only super administrators can perform this action",
		"error.not_found":                   "Resource not found",
		"error.internal":                    "Internal server error",
		"error.query_failed":                "Query failed",
		"error.save_failed":                 "Save failed",
		"error.delete_failed":               "Delete failed",
		"error.jwt_secret_missing":          "JWT secret is not configured",
		"error.auth_header_missing":         "Missing Authorization header",
		"error.auth_header_invalid":         "Malformed Authorization header",
		"error.token_invalid":               "Invalid token",
		"error.token_revoked":               "Token has been revoked, please sign in again",
		"error.admin_id_invalid":            "Invalid administrator ID",
		"error.admin_id_type_invalid":       "Invalid administrator ID type",
		"error.admin_not_found":             "Administrator not found",
		"error.admin_login_invalid":         "Incorrect username or password",
		"error.login_failed":                "Login failed",
		"error.login_too_many":              "Too many login attempts, try again in %d seconds",
		"error.rate_limited":                "Too many requests, try again in %d seconds",
		"error.quote_too_many":              "Too many quote requests, try again in %d seconds",
		"error.rate_limit_unavailable":      "Rate limiter unavailable",
		"error.password_weak":               "Password is too weak",
		"error.password_min_length":         "Password must be at least %d characters",
		"error.password_require_upper":      "Password must contain an uppercase letter",
		"error.password_require_lower":      "Password must contain a lowercase letter",
		"error.password_require_number":     "Password must contain a number",
		"error.password_require_special":    "Password must contain a special character",
		"error.password_old_invalid":        "Current password is incorrect",
		"error.password_unchanged":          "New password must differ from the current one",
		"error.venue_id_invalid":            "Invalid venue ID",
		"error.venue_not_found":             "Venue not found",
		"error.venue_inactive":              "Venue is inactive",
		"error.venue_invalid":               "Invalid venue data",
		"error.venue_code_exists":           "Venue code already exists",
		"error.asset_id_invalid":            "Invalid asset ID",
		"error.asset_not_found":             "Asset not found",
		"error.asset_inactive":              "Asset is not bookable",
		"error.asset_invalid":               "Invalid asset data",
		"error.asset_code_exists":           "Asset code already exists",
		"error.pricing_rule_id_invalid":     "Invalid pricing rule ID",
		"error.pricing_rule_not_found":      "Pricing rule not found",
		"error.pricing_rule_invalid":        "Invalid pricing rule",
		"error.pricing_rule_field_invalid":  "Invalid pricing rule field: %s",
		"error.pricing_rule_status_invalid": "Invalid pricing rule status",
		"error.quote_invalid":               "Invalid quote parameters",
		"error.quote_range_invalid":         "End time must be after start time",
		"error.quote_too_long":              "Booking duration cannot exceed %d hours",
		"error.quote_failed":                "Quote failed",
		"error.role_invalid":                "Invalid role",
		"error.role_not_found":              "Role not found",
	},
}
