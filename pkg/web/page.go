package web

import (
	"html/template"
	"net/url"

	"github.com/rs/xid"
)

func fileURL(id xid.ID, name string) string {
	return "/files/" + id.String() + "/" + url.PathEscape(name)
}

var page = template.Must(template.New("page").Funcs(template.FuncMap{
	"fileURL": fileURL,
}).Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>pixelfrag</title>
<style>
body { font-family: sans-serif; margin: 2em; }
img.preview { width: 256px; height: 256px; image-rendering: pixelated; border: 1px solid #ccc; }
pre { max-height: 24em; overflow: auto; background: #f6f6f6; padding: 1em; }
</style>
</head>
<body>
<form method="post" action="/convert" enctype="multipart/form-data">
  <input type="file" name="file" accept="image/*">
  <button type="submit">Convert</button>
</form>
{{- with .Current}}
<h2>{{.Source}}</h2>
<img class="preview" src="{{fileURL .ID .Preview.Name}}" alt="16x16 preview">
<p>
  <a id="download-shader" href="{{fileURL .ID .Shader.Name}}?dl=1" download="{{.Shader.Name}}">Download {{.Shader.Name}}</a>
  <a id="download-preview" href="{{fileURL .ID .Preview.Name}}?dl=1" download="{{.Preview.Name}}">Download {{.Preview.Name}}</a>
</p>
<pre id="shader">{{printf "%s" .Shader.Data}}</pre>
{{- else}}
<p>
  <button disabled>Download shader</button>
  <button disabled>Download preview</button>
</p>
{{- end}}
{{- with .Error}}
<p class="error">{{.}}</p>
{{- end}}
</body>
</html>
`))
