package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Handler returns the router serving the theme demo page. The page is the
// fixture the built-in theme suite runs against: a #theme-toggle button that
// flips the light-mode class on body, a .sidebar layout region, and a
// localStorage-backed theme preference applied on every load.
func Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(indexHTML))
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(router)
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Theme Demo</title>
<style>
  body { margin: 0; display: flex; min-height: 100vh; background: #1e1e2e; color: #cdd6f4; font-family: sans-serif; }
  body.light-mode { background: #f5f5f5; color: #1e1e2e; }
  .sidebar { flex: 0 0 180px; min-width: 120px; padding: 16px; background: #313244; }
  body.light-mode .sidebar { background: #e0e0e0; }
  .content { flex: 1; padding: 16px; }
  #theme-toggle { padding: 8px 16px; cursor: pointer; }
</style>
</head>
<body>
<nav class="sidebar">
  <h2>Menu</h2>
  <ul>
    <li><a href="/">Home</a></li>
    <li><a href="/health">Health</a></li>
  </ul>
</nav>
<main class="content">
  <h1>Theme Demo</h1>
  <button id="theme-toggle" type="button">Toggle theme</button>
</main>
<script>
  (function () {
    if (localStorage.getItem("theme") === "light") {
      document.body.classList.add("light-mode");
    }
    document.getElementById("theme-toggle").addEventListener("click", function () {
      var light = document.body.classList.toggle("light-mode");
      localStorage.setItem("theme", light ? "light" : "dark");
    });
  })();
</script>
</body>
</html>
`
