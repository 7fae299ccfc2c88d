package api

import (
	"crypto/rand"
	"encoding/base64"
	"html/template"
)

// handshakeTemplate answers the CMS popup flow: the listener is registered
// before the opener is notified, so the opener's reply cannot be missed.
// Values are emitted in JavaScript context and escaped by html/template.
var handshakeTemplate = template.Must(template.New("handshake").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Autorizando…</title>
</head>
<body>
<p>Autorización completada. Esta ventana se cerrará sola.</p>
<script nonce="{{.Nonce}}">
(function () {
  var allowed = {{.AllowedOrigins}};
  var message = {{.Message}};
  function receiveMessage(e) {
    if (allowed.length > 0 && allowed.indexOf(e.origin) === -1) {
      return;
    }
    window.removeEventListener("message", receiveMessage, false);
    window.opener.postMessage(message, e.origin);
  }
  window.addEventListener("message", receiveMessage, false);
  window.opener.postMessage({{.Notify}}, "*");
})();
</script>
</body>
</html>
`))

type handshakeData struct {
	Nonce          string
	AllowedOrigins []string
	Message        string
	Notify         string
}

// newNonce returns a fresh value for the script-src CSP nonce
func newNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func handshakeCSP(nonce string) string {
	return "default-src 'none'; " +
		"script-src 'nonce-" + nonce + "'; " +
		"base-uri 'none'; " +
		"form-action 'none'; " +
		"frame-ancestors 'none'"
}
