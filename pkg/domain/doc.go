/*
Package domain contains the core vocabulary of a shading network.

It defines how prims and properties are addressed, the reserved property
names that back ports and implementation sources, the serializable layer
documents exchanged with stores, and the sentinel errors shared by every
other package. Like the rest of the core it has no I/O and no external
dependencies.

# Key Entities

  - Path / PropertyPath: addresses of prims ("/Model/Pale") and of their
    properties ("/Model/Pale.outputs:Fout").
  - Layer / PrimSpec / AttributeSpec: the persisted form of a stage.
  - ImplementationSource: the token selecting what backs a shader.
  - LifecycleHooks: callbacks fired on every authoring operation.
*/
package domain
