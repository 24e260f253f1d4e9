package mysql

import (
	"database/sql"
	"fmt"
)

// 启动时执行的建表语句，外键在父侧级联删除：
// 删除用户会带走其商店和评分，删除商店会带走其评分
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(60) NOT NULL,
		username VARCHAR(255) UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		address VARCHAR(400),
		password_hash VARCHAR(255) NOT NULL,
		avatar_url VARCHAR(255) NOT NULL DEFAULT '',
		role VARCHAR(20) NOT NULL DEFAULT 'normal_user',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS stores (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		address VARCHAR(400) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		website VARCHAR(255) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		description TEXT,
		category VARCHAR(100) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id INT AUTO_INCREMENT PRIMARY KEY,
		store_id INT NOT NULL,
		user_id INT NOT NULL,
		rating INT NOT NULL CHECK (rating >= 1 AND rating <= 5),
		comment TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (store_id) REFERENCES stores(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
}

// EnsureSchema 保证三张业务表存在。
// 注意：ratings 表故意没有 (user_id, store_id) 的唯一约束，
// 同一用户对同一商店可以插入多条评分，前端按最新一条处理。
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("初始化数据表失败: %w", err)
		}
	}
	return nil
}
