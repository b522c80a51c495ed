package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// jsonArrayContainsExpr 构建 JSON 字符串数组包含判断，兼容 sqlite 与 postgres，需一个参数。
func jsonArrayContainsExpr(db *gorm.DB, column string) string {
	return jsonArrayContainsExprByDialect(dbDialectName(db), column)
}

func jsonArrayContainsExprByDialect(dialect, column string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		// ? 与占位符冲突，使用 jsonb_exists
		return fmt.Sprintf("jsonb_exists(COALESCE(NULLIF(%s, ''), '[]')::jsonb, ?)", column)
	default:
		return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(COALESCE(NULLIF(%s, ''), '[]')) WHERE json_each.value = ?)", column)
	}
}

// jsonArrayEmptyExpr 构建 JSON 数组为空判断（空表示适用全部场地）。
func jsonArrayEmptyExpr(db *gorm.DB, column string) string {
	return jsonArrayEmptyExprByDialect(dbDialectName(db), column)
}

func jsonArrayEmptyExprByDialect(dialect, column string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return fmt.Sprintf("jsonb_array_length(COALESCE(NULLIF(%s, ''), '[]')::jsonb) = 0", column)
	default:
		return fmt.Sprintf("json_array_length(COALESCE(NULLIF(%s, ''), '[]')) = 0", column)
	}
}

// buildLikeCondition 构建多列 LIKE 条件，并返回参数数量。
func buildLikeCondition(db *gorm.DB, columns []string) (string, int) {
	return buildLikeConditionByDialect(dbDialectName(db), columns)
}

func buildLikeConditionByDialect(dialect string, columns []string) (string, int) {
	parts := make([]string, 0, len(columns))
	operator := likeOperatorByDialect(dialect)
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", trimmed, operator))
	}
	return strings.Join(parts, " OR "), len(parts)
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}

// applyKeyword 为查询附加关键字模糊匹配
func applyKeyword(query *gorm.DB, keyword string, columns ...string) *gorm.DB {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return query
	}
	condition, count := buildLikeCondition(query, columns)
	if count == 0 {
		return query
	}
	return query.Where("("+condition+")", repeatLikeArgs("%"+keyword+"%", count)...)
}
