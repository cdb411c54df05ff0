package talkjs

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the TalkJS identity signature: hex(HMAC-SHA256(secretKey, userID)).
func Sign(secretKey, userID string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(userID))
	return hex.EncodeToString(mac.Sum(nil))
}
