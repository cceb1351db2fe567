package devserver

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

// page renders the shell page around the current markup. The script applies
// patch messages by data-id and forwards click and keyup events.
func (s *Server) page() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := html.EscapeString(s.app.Name)
		if _, err := io.WriteString(w, `<!DOCTYPE html><html><head><meta charset="utf-8"><title>`+title+`</title></head><body>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div id="`+RootID+`">`+s.Markup()+`</div>`); err != nil {
			return err
		}
		_, err := io.WriteString(w, clientScript+`</body></html>`)
		return err
	})
}

const clientScript = `<script>
(function() {
    'use strict';

    var root = document.getElementById('` + RootID + `');
    var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(protocol + '//' + location.host + '/ws');

    ws.onmessage = function(event) {
        var msg = JSON.parse(event.data);
        if (msg.type !== 'patch') return;
        var target = msg.target === 'root' ? root : root.querySelector('[data-id="' + msg.target + '"]');
        if (target) target.innerHTML = msg.markup;
    };

    function send(type, el, value) {
        var body = new URLSearchParams();
        if (value) body.set('value', value);
        fetch('/dispatch/' + encodeURIComponent(el.dataset.id) + '/' + type, {method: 'POST', body: body});
    }

    root.addEventListener('click', function(e) {
        var el = e.target.closest('[data-id]');
        if (el) send('click', el);
    });
    root.addEventListener('keyup', function(e) {
        var el = e.target.closest('[data-id]');
        if (el) send('keyup', el, el.value);
    });
})();
</script>`
