package mcpserver

// CanvasFormatContract describes the JSON format produced by export_canvas
// and stored for saved workspace documents.
const CanvasFormatContract = `# Canvas Format Contract

Exported canvases and saved workspace documents are UTF-8 JSON objects
indented with two spaces.

## Structure

` + "```" + `json
{
  "title": "Checkout flow",
  "nodes": [
    {
      "id": "node_1760400000000_k3v9x0a2q",
      "type": "service",
      "position": {"x": 0, "y": 0},
      "data": {"label": "API", "z": 0}
    }
  ],
  "edges": [
    {
      "id": "edge_1760400000250_a1b2c3d4e",
      "source": "node_1760400000000_k3v9x0a2q",
      "target": "node_1760400000125_p8d2m4w7c",
      "type": "smoothstep"
    }
  ]
}
` + "```" + `

## Rules

1. **` + "`" + `nodes` + "`" + ` and ` + "`" + `edges` + "`" + ` are arrays.** A missing key is read as empty; ` + "`" + `{}` + "`" + ` is a valid empty canvas.
2. **` + "`" + `title` + "`" + ` is optional** and only present in saved documents. It must be a string.
3. **Ids** are unique within their collection. Generated ids look like ` + "`" + `node_<unix millis>_<9 chars>` + "`" + ` and
   ` + "`" + `edge_<unix millis>_<9 chars>` + "`" + `.
4. **` + "`" + `position` + "`" + `** holds plain x/y numbers in 2d coordinates. The 3d and iso views are
   projections computed on read, never stored.
5. **` + "`" + `data` + "`" + `** is a free-form object. Well-known keys: ` + "`" + `label` + "`" + ` (string, used in search),
   ` + "`" + `z` + "`" + ` (number, depth in the 3d view), ` + "`" + `projection` + "`" + ` (set to ` + "`" + `"iso"` + "`" + ` on projected output).
6. **Edges** reference node ids through ` + "`" + `source` + "`" + ` and ` + "`" + `target` + "`" + `. Deleting a node deletes
   every edge attached to it.
7. **Document names** use letters, digits, dot, dash and underscore, start with a letter or digit,
   and are stored as ` + "`" + `<name>.json` + "`" + ` in the workspace root.
`
