package feed

import (
	"math/rand"
	"net/http"
)

// feedAccept lists feed media types first, some self-hosted bridges answer html to plain accept
const feedAccept = "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,text/html;q=0.7,*/*;q=0.5"

// acceptLanguages contains Accept-Language values rotated between requests
var acceptLanguages = []string{
	"zh-CN,zh;q=0.9,en;q=0.8",
	"zh-CN,zh;q=0.9",
	"zh-CN,zh-TW;q=0.9,en-US;q=0.8,en;q=0.7",
	"en-US,en;q=0.9,zh-CN;q=0.8",
}

// addBrowserHeaders sets browser-like headers on a feed request
func addBrowserHeaders(req *http.Request) {
	req.Header.Set("Accept", feedAccept)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // header variation only
	req.Header.Set("Connection", "keep-alive")
	if rand.Float32() < 0.3 { //nolint:gosec // header variation only
		req.Header.Set("DNT", "1")
	}
}
