// Package views renders the viewer pages. Components are composed with the
// templ runtime directly; the page embeds the initial building snapshot as
// JSON and a canvas renderer that re-draws on websocket patches.
package views

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/nirholas/hyperscape-sub002/internal/protocol"
)

// IndexPage renders the building viewer with its initial snapshot.
func IndexPage(snapshot protocol.BuildingSnapshot, typeKeys []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		snapJSON, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		keysJSON, err := json.Marshal(typeKeys)
		if err != nil {
			return fmt.Errorf("failed to encode type keys: %w", err)
		}

		if _, err := io.WriteString(w, pageHead); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w,
			"<script id=\"snapshot\" type=\"application/json\">%s</script>\n"+
				"<script id=\"type-keys\" type=\"application/json\">%s</script>\n",
			snapJSON, keysJSON); err != nil {
			return err
		}
		_, err = io.WriteString(w, pageBody)
		return err
	})
}

const pageHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<title>Building Generator</title>
<style>
body { margin: 0; background: #1c1c24; color: #ddd; font-family: monospace; }
#bar { padding: 8px; display: flex; gap: 8px; align-items: center; }
#plan { display: block; margin: 0 auto; background: #14141a; }
input, select, button { background: #2a2a34; color: #ddd; border: 1px solid #444; padding: 4px; }
#stats { padding: 8px; white-space: pre; }
</style>
</head>
<body>
`

const pageBody = `<div id="bar">
<select id="type"></select>
<input id="seed" value="house-1"/>
<label><input id="roof" type="checkbox" checked/> roof</label>
<button id="gen">generate</button>
<span id="status"></span>
</div>
<canvas id="plan" width="900" height="600"></canvas>
<div id="stats"></div>
<script>
var snapshot = JSON.parse(document.getElementById("snapshot").textContent);
var typeKeys = JSON.parse(document.getElementById("type-keys").textContent);
var typeSel = document.getElementById("type");
typeKeys.forEach(function (k) {
  var opt = document.createElement("option");
  opt.value = k; opt.textContent = k;
  typeSel.appendChild(opt);
});
typeSel.value = snapshot.typeKey;

var roomColors = ["#4f7a8c", "#8c6f4f", "#6f8c4f", "#8c4f6f", "#4f5a8c", "#8c8a4f", "#5f8c7a", "#7a4f8c"];

function draw() {
  var canvas = document.getElementById("plan");
  var ctx = canvas.getContext("2d");
  ctx.clearRect(0, 0, canvas.width, canvas.height);
  var pad = 20;
  var floors = snapshot.plans.length;
  var cell = Math.min(
    (canvas.width - pad * (floors + 1)) / (snapshot.width * floors),
    (canvas.height - 2 * pad) / snapshot.height);

  snapshot.plans.forEach(function (plan, f) {
    var ox = pad + f * (snapshot.width * cell + pad);
    var oy = pad;
    for (var y = 0; y < plan.height; y++) {
      for (var x = 0; x < plan.width; x++) {
        var i = y * plan.width + x;
        if (!plan.cells[i]) continue;
        ctx.fillStyle = roomColors[plan.roomIds[i] % roomColors.length];
        ctx.fillRect(ox + x * cell, oy + y * cell, cell - 1, cell - 1);
      }
    }
    (snapshot.openings || []).forEach(function (o) {
      if (o.floor !== f) return;
      ctx.fillStyle = o.kind === "window" ? "#bfe3ff" : (o.kind === "arch" ? "#ffd27a" : "#ff7a7a");
      var cx = ox + o.a.x * cell, cy = oy + o.a.y * cell;
      if (o.b) {
        var mx = (cx + ox + o.b.x * cell) / 2 + cell / 2;
        var my = (cy + oy + o.b.y * cell) / 2 + cell / 2;
        ctx.fillRect(mx - 3, my - 3, 6, 6);
      } else {
        var ex = cx + cell / 2, ey = cy + cell / 2;
        if (o.side === "north") ey = cy;
        if (o.side === "south") ey = cy + cell;
        if (o.side === "west") ex = cx;
        if (o.side === "east") ex = cx + cell;
        ctx.fillRect(ex - 3, ey - 3, 6, 6);
      }
    });
    if (snapshot.stair) {
      ctx.strokeStyle = "#fff";
      var sc = f === 0 ? snapshot.stair.anchor : snapshot.stair.landing;
      ctx.strokeRect(ox + sc.x * cell + 2, oy + sc.y * cell + 2, cell - 4, cell - 4);
    }
  });
  document.getElementById("stats").textContent = JSON.stringify(snapshot.stats, null, 2);
}

var proto = location.protocol === "https:" ? "wss://" : "ws://";
var sock = new WebSocket(proto + location.host + "/stream");
sock.onmessage = function (ev) {
  var patch = JSON.parse(ev.data);
  if (patch.type === "BuildingGenerated") {
    snapshot = patch.payload;
    typeSel.value = snapshot.typeKey;
    document.getElementById("seed").value = snapshot.seed;
    draw();
  }
};
sock.onopen = function () { document.getElementById("status").textContent = "connected"; };
sock.onclose = function () { document.getElementById("status").textContent = "disconnected"; };

document.getElementById("gen").onclick = function () {
  sock.send(JSON.stringify({
    type: "RequestGenerate",
    payload: {
      typeKey: typeSel.value,
      seed: document.getElementById("seed").value,
      includeRoof: document.getElementById("roof").checked
    }
  }));
};

draw();
</script>
</body>
</html>
`
