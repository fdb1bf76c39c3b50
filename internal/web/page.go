package web

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; background: #0e1117; color: #fafafa; margin: 2rem; }
.columns { display: flex; gap: 2rem; }
.metrics { flex: 1; }
.chart { flex: 2; }
.metrics p { margin: .4rem 0; }
.stats { color: #9aa0a6; font-size: .9rem; }
.warning { background: #3d3100; color: #ffd24c; padding: .6rem 1rem; border-radius: 4px; margin-bottom: 1rem; }
.hidden { display: none; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<label for="pair">Select Cryptocurrency Pair</label>
<select id="pair">
{{- range .Pairs}}
<option value="{{.}}"{{if eq . $.Selected}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
<h2 id="subheading">{{.Subheading}}</h2>
<div id="notice" class="warning{{if not .Notice}} hidden{{end}}">{{.Notice}}</div>
<div class="columns">
<div class="metrics" id="metrics">
{{- range .Metrics}}
<p>{{if .Label}}<b>{{.Label}}:</b> {{end}}{{.Value}}</p>
{{- end}}
<div class="stats" id="stats">
{{- range .Stats}}
<p>{{.}}</p>
{{- end}}
</div>
</div>
<div class="chart" id="chart">{{.Chart}}</div>
</div>
<script>
(function () {
  function text(tag, value, cls) {
    var el = document.createElement(tag);
    if (cls) { el.className = cls; }
    el.textContent = value;
    return el;
  }
  function render(view) {
    document.getElementById("subheading").textContent = view.subheading;
    var notice = document.getElementById("notice");
    notice.textContent = view.notice || "";
    notice.classList.toggle("hidden", !view.notice);
    var metrics = document.getElementById("metrics");
    var stats = document.getElementById("stats");
    while (metrics.firstChild !== stats) { metrics.removeChild(metrics.firstChild); }
    (view.summary || []).forEach(function (line) {
      var p = document.createElement("p");
      var i = line.indexOf(": ");
      if (i >= 0) {
        p.appendChild(text("b", line.slice(0, i + 1)));
        p.appendChild(document.createTextNode(" " + line.slice(i + 2)));
      } else {
        p.textContent = line;
      }
      metrics.insertBefore(p, stats);
    });
    stats.replaceChildren();
    (view.stats || []).forEach(function (line) { stats.appendChild(text("p", line)); });
    document.getElementById("chart").innerHTML = view.chart_svg;
  }
  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "/ws");
    ws.onmessage = function (ev) { render(JSON.parse(ev.data)); };
    ws.onclose = function () { setTimeout(connect, 2000); };
  }
  document.getElementById("pair").addEventListener("change", function (ev) {
    fetch("/api/v1/selection", {
      method: "PUT",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({ pair: ev.target.value })
    });
  });
  connect();
})();
</script>
</body>
</html>
`))
