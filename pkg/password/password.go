package password

import (
	"golang.org/x/crypto/bcrypt"
)

// Hash 注册时生成口令的bcrypt哈希，数据库只存哈希不存明文
func Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify 登录时比对明文口令与存储的哈希
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
