package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	MaxLoginFailures   = 10
	LoginFailureWindow = time.Hour
)

func loginFailuresKey(email string) string {
	return fmt.Sprintf("login_failures_%s", email)
}

// CanAttemptLogin - не больше MaxLoginFailures неудачных входов в час на email.
// Без redis ограничение не действует.
func CanAttemptLogin(ctx context.Context, rdb *redis.Client, email string) (bool, string) {
	if rdb == nil {
		return true, ""
	}
	cnt, _ := rdb.Get(ctx, loginFailuresKey(email)).Int()
	if cnt >= MaxLoginFailures {
		return false, "Слишком много неудачных попыток входа, попробуйте через час"
	}
	return true, ""
}

// MarkLoginFailed считает неудачный вход. Окно фиксированное: TTL ставится на первой ошибке.
func MarkLoginFailed(ctx context.Context, rdb *redis.Client, email string) {
	if rdb == nil {
		return
	}
	key := loginFailuresKey(email)
	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		LogError(err, "login limiter: incr")
		return
	}
	if cnt == 1 {
		if err := rdb.Expire(ctx, key, LoginFailureWindow).Err(); err != nil {
			LogError(err, "login limiter: expire")
		}
	}
}

func ResetLoginFailures(ctx context.Context, rdb *redis.Client, email string) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, loginFailuresKey(email))
}
