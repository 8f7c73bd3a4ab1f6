/*
Package stage implements the composition model shading networks are authored on.

A Stage holds prims. Each prim holds its own opinions (attributes with
values, connections and metadata, plus dictionary-valued fields) and an
ordered list of inheritance arcs. Nothing is flattened: every query walks
the prim's contributors, which are the prim itself followed by its
inherited prims, nearest first.

# Resolution

  - Scalar and list fields: the first contributor with an authored opinion
    wins. For connections an authored empty list is an opinion, so it
    blocks every weaker contributor.
  - Dictionary fields: each key resolves on its own, the nearest
    contributor defining the key wins.

A Stage is not safe for concurrent mutation. Use the workspace package to
serialize access to persisted layers.
*/
package stage
